package postgres

import (
	"context"
	"database/sql"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// CompanyPostgres is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyPostgres struct {
	db *sql.DB
}

// NewCompanyPostgres creates a new CompanyPostgres repository.
func NewCompanyPostgres(db *sql.DB) *CompanyPostgres {
	return &CompanyPostgres{db: db}
}

var _ repository.CompanyRepository = (*CompanyPostgres)(nil)

const companyColumns = `id, company_name, year_of_assignment, start_audit_period, end_audit_period, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*model.Company, error) {
	var c model.Company
	if err := row.Scan(
		&c.ID,
		&c.CompanyName,
		&c.YearOfAssignment,
		&c.StartAuditPeriod,
		&c.EndAuditPeriod,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new company row and returns the stored record.
func (r *CompanyPostgres) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		INSERT INTO companies (id, company_name, year_of_assignment, start_audit_period, end_audit_period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CompanyName,
		c.YearOfAssignment,
		c.StartAuditPeriod,
		c.EndAuditPeriod,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return scanCompany(row)
}

// FindByID fetches a company by ID.
func (r *CompanyPostgres) FindByID(ctx context.Context, id string) (*model.Company, error) {
	const q = `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`
	return scanCompany(r.db.QueryRowContext(ctx, q, id))
}

// List returns companies using LIMIT/OFFSET pagination and a total count.
func (r *CompanyPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Company], error) {
	const qCount = `SELECT COUNT(*) FROM companies`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Company]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites mutable columns of an existing company row.
func (r *CompanyPostgres) Update(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		UPDATE companies
		SET company_name = $2, year_of_assignment = $3, start_audit_period = $4, end_audit_period = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CompanyName,
		c.YearOfAssignment,
		c.StartAuditPeriod,
		c.EndAuditPeriod,
		c.UpdatedAt,
	)
	return scanCompany(row)
}

// UserCounts returns the number of users attached to each company.
func (r *CompanyPostgres) UserCounts(ctx context.Context) ([]model.CompanyUserCount, error) {
	const q = `
		SELECT c.id, c.company_name, COUNT(u.id)
		FROM companies c
		LEFT JOIN users u ON u.company_id = c.id
		GROUP BY c.id, c.company_name
		ORDER BY c.company_name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]model.CompanyUserCount, 0)
	for rows.Next() {
		var cc model.CompanyUserCount
		if err := rows.Scan(&cc.CompanyID, &cc.CompanyName, &cc.UserCount); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Delete removes a company by ID. Missing rows are not an error.
func (r *CompanyPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM companies WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
