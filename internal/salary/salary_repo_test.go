package salary_test

import (
	"context"
	"testing"

	"github.com/sims96/lesims-hrm-sub000/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// An update enlisted with WithTx must execute on that transaction, not on
// the gorm pool, so it commits or rolls back together with the outbox
// insert sitting next to it.
func TestSalaryRepository_Update_RidesEnlistedTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := salary.NewRepository(gormDB)
	stored := storedSalary()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE salaries`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)

	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), stored))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
