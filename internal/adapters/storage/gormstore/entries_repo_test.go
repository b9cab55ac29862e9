package gormstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"medication-log/internal/domain/medications"
	"medication-log/internal/platform/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMySQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               newGormLogger(logger.Nop()),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               newGormLogger(logger.Nop()),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestEntriesRepo_Create_MySQL(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `item` (`medication_name`,`dosage`) VALUES (?,?)")).
		WithArgs("Ibuprofen", "200mg").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	e := medications.Entry{MedicationName: "Ibuprofen", Dosage: "200mg"}
	require.NoError(t, repo.Create(context.Background(), &e))

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "Ibuprofen", e.MedicationName)
	assert.Equal(t, "200mg", e.Dosage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesRepo_Create_IgnoresCallerID(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `item` (`medication_name`,`dosage`) VALUES (?,?)")).
		WithArgs("Aspirin", "100mg").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	e := medications.Entry{ID: 99, MedicationName: "Aspirin", Dosage: "100mg"}
	require.NoError(t, repo.Create(context.Background(), &e))

	assert.Equal(t, int64(7), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesRepo_Create_StorageError(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	boom := errors.New("connection refused")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `item`")).WillReturnError(boom)
	mock.ExpectRollback()

	e := medications.Entry{MedicationName: "Ibuprofen", Dosage: "200mg"}
	err := repo.Create(context.Background(), &e)

	require.ErrorIs(t, err, boom)
	assert.Zero(t, e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesRepo_List_MySQL(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	rows := sqlmock.NewRows([]string{"id", "medication_name", "dosage"}).
		AddRow(1, "Ibuprofen", "200mg").
		AddRow(2, "Paracetamol", "500mg")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `item` ORDER BY id ASC")).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []medications.Entry{
		{ID: 1, MedicationName: "Ibuprofen", Dosage: "200mg"},
		{ID: 2, MedicationName: "Paracetamol", Dosage: "500mg"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesRepo_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `item`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "medication_name", "dosage"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEntriesRepo_List_StorageError(t *testing.T) {
	db, mock := newMySQLMock(t)
	repo := NewEntriesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `item`")).WillReturnError(errors.New("gone"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list entries")
}

func TestEntriesRepo_Create_Postgres(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewEntriesRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "item" ("medication_name","dosage") VALUES ($1,$2) RETURNING "id"`)).
		WithArgs("Ibuprofen", "200mg").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	e := medications.Entry{MedicationName: "Ibuprofen", Dosage: "200mg"}
	require.NoError(t, repo.Create(context.Background(), &e))

	assert.Equal(t, int64(1), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_TwiceIsIdempotent_MySQL(t *testing.T) {
	db, mock := newMySQLMock(t)

	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `item`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_TwiceIsIdempotent_Postgres(t *testing.T) {
	db, mock := newPostgresMock(t)

	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "item"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StorageError(t *testing.T) {
	db, mock := newMySQLMock(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `item`")).
		WillReturnError(errors.New("denied"))

	err := Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate item")
}

func TestRowMapping(t *testing.T) {
	e := medications.Entry{ID: 3, MedicationName: "Amoxicillin", Dosage: "250mg"}
	assert.Equal(t, e, toEntry(toRow(e)))
	assert.Equal(t, "item", entryRow{}.TableName())
}
