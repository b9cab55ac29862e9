package gormstore

import (
	"context"
	"fmt"

	"medication-log/internal/domain/medications"

	"gorm.io/gorm"
)

// entryRow es la forma en tabla de medications.Entry.
// La tabla se llama "item" para seguir leyendo bases ya existentes.
type entryRow struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	MedicationName string `gorm:"column:medication_name;type:varchar(100);not null"`
	Dosage         string `gorm:"column:dosage;type:varchar(50);not null"`
}

func (entryRow) TableName() string { return "item" }

func toRow(e medications.Entry) entryRow {
	return entryRow{
		ID:             e.ID,
		MedicationName: e.MedicationName,
		Dosage:         e.Dosage,
	}
}

func toEntry(r entryRow) medications.Entry {
	return medications.Entry{
		ID:             r.ID,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
	}
}

// DDL de la tabla por dialecto. Las columnas siguen los tags de entryRow.
var createItemTable = map[string]string{
	DriverMySQL: "CREATE TABLE IF NOT EXISTS `item` (" +
		"`id` BIGINT NOT NULL AUTO_INCREMENT, " +
		"`medication_name` VARCHAR(100) NOT NULL, " +
		"`dosage` VARCHAR(50) NOT NULL, " +
		"PRIMARY KEY (`id`))",
	DriverPostgres: `CREATE TABLE IF NOT EXISTS "item" (` +
		`"id" BIGSERIAL PRIMARY KEY, ` +
		`"medication_name" VARCHAR(100) NOT NULL, ` +
		`"dosage" VARCHAR(50) NOT NULL)`,
}

// Migrate crea la tabla si falta. Idempotente; no toca datos existentes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	ddl, ok := createItemTable[db.Dialector.Name()]
	if !ok {
		return fmt.Errorf("migrate item: %w: %q", ErrUnknownDriver, db.Dialector.Name())
	}
	if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("migrate item: %w", err)
	}
	return nil
}

var _ medications.Repository = (*EntriesRepo)(nil)

type EntriesRepo struct {
	db *gorm.DB
}

func NewEntriesRepo(db *gorm.DB) *EntriesRepo {
	return &EntriesRepo{db: db}
}

func (r *EntriesRepo) Create(ctx context.Context, e *medications.Entry) error {
	row := toRow(*e)
	row.ID = 0 // el id lo asigna la base

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	*e = toEntry(row)
	return nil
}

func (r *EntriesRepo) List(ctx context.Context) ([]medications.Entry, error) {
	var rows []entryRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]medications.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntry(row))
	}
	return out, nil
}
