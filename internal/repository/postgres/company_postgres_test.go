package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docflow/internal/model"
	"docflow/internal/repository"
)

func companyRows(companies ...*model.Company) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "company_name", "year_of_assignment", "start_audit_period",
		"end_audit_period", "created_at", "updated_at",
	})
	for _, c := range companies {
		rows.AddRow(c.ID, c.CompanyName, c.YearOfAssignment, c.StartAuditPeriod,
			c.EndAuditPeriod, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func testCompany() *model.Company {
	now := time.Now().UTC()
	year := 2026
	return &model.Company{
		ID:               "company-1",
		CompanyName:      "Acme Corp",
		YearOfAssignment: &year,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestCompanyPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	c := testCompany()

	mock.ExpectQuery("INSERT INTO companies").
		WithArgs(c.ID, c.CompanyName, c.YearOfAssignment, c.StartAuditPeriod,
			c.EndAuditPeriod, c.CreatedAt, c.UpdatedAt).
		WillReturnRows(companyRows(c))

	result, err := repo.Create(ctx, c)

	assert.NoError(t, err)
	assert.Equal(t, c.CompanyName, result.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCompanyPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		c := testCompany()
		mock.ExpectQuery("SELECT (.+) FROM companies").
			WithArgs(c.ID).
			WillReturnRows(companyRows(c))

		result, err := repo.FindByID(ctx, c.ID)
		assert.NoError(t, err)
		assert.Equal(t, c.ID, result.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM companies").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	c := testCompany()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM companies").
		WithArgs(10, 0).
		WillReturnRows(companyRows(c))

	result, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyPostgres_UserCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCompanyPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "company_name", "count"}).
		AddRow("company-1", "Acme Corp", 3).
		AddRow("company-2", "Globex", 0)

	mock.ExpectQuery("LEFT JOIN users").WillReturnRows(rows)

	counts, err := repo.UserCounts(ctx)

	assert.NoError(t, err)
	assert.Len(t, counts, 2)
	assert.Equal(t, 3, counts[0].UserCount)
	assert.Equal(t, "Globex", counts[1].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCompanyPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM companies").
		WithArgs("company-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "company-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
