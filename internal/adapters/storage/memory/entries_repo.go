package memory

import (
	"context"
	"errors"
	"sync"

	"medication-log/internal/domain/medications"
)

var (
	ErrInvalidEntry = errors.New("medication name and dosage required")
)

// entriesRepo imita la tabla real: ids autoincrementales desde 1,
// orden de inserción, NOT NULL sobre ambos campos.
type entriesRepo struct {
	mu     sync.RWMutex
	lastID int64
	rows   []medications.Entry
}

func NewEntriesRepo() medications.Repository {
	return &entriesRepo{}
}

func (r *entriesRepo) Create(ctx context.Context, e *medications.Entry) error {
	if e.MedicationName == "" || e.Dosage == "" {
		return ErrInvalidEntry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	e.ID = r.lastID
	r.rows = append(r.rows, *e)
	return nil
}

func (r *entriesRepo) List(ctx context.Context) ([]medications.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Entry, len(r.rows))
	copy(out, r.rows)
	return out, nil
}
