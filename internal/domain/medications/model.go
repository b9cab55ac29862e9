package medications

// Entry es un registro de medicación: nombre y dosis.
// ID lo asigna el storage al insertar y no cambia después.
type Entry struct {
	ID             int64
	MedicationName string
	Dosage         string
}
