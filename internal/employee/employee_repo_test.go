package employee_test

import (
	"context"
	"testing"

	"go-attendance/internal/employee"
	"go-attendance/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRepository_ExistsByEmail(t *testing.T) {
	t.Run("excludes the record being updated", func(t *testing.T) {
		db, mock, _ := testdb.New(t)
		repo := employee.NewRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE email = \$1 AND id <> \$2`).
			WithArgs("me@example.com", "self-id").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		taken, err := repo.ExistsByEmail(context.Background(), "me@example.com", "self-id")

		assert.NoError(t, err)
		assert.False(t, taken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create checks all rows", func(t *testing.T) {
		db, mock, _ := testdb.New(t)
		repo := employee.NewRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE mobile_number = \$1$`).
			WithArgs("0123456789").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		taken, err := repo.ExistsByMobileNumber(context.Background(), "0123456789", "")

		assert.NoError(t, err)
		assert.True(t, taken)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, _ := testdb.New(t)
	repo := employee.NewRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "full_name", "email", "mobile_number"}).
			AddRow(id.String(), "EMP-000001", "Jane Doe", "jane@example.com", nil))

	empl, err := repo.FindByID(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, id, empl.ID)
	assert.Nil(t, empl.MobileNumber)
}

func TestRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, _ := testdb.New(t)
		repo := employee.NewRepository(db)

		mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
			WithArgs("abc").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "abc"))
	})

	t.Run("no rows", func(t *testing.T) {
		db, mock, _ := testdb.New(t)
		repo := employee.NewRepository(db)

		mock.ExpectExec(`DELETE FROM "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), gorm.ErrRecordNotFound)
	})
}
