package repository

import (
	"context"

	"docflow/internal/model"
)

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// Create inserts a new company row and returns the stored record.
	Create(ctx context.Context, c *model.Company) (*model.Company, error)

	// FindByID returns a company by its ID.
	FindByID(ctx context.Context, id string) (*model.Company, error)

	// List returns a paginated list of companies and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Company], error)

	// Update overwrites mutable columns of an existing company row.
	Update(ctx context.Context, c *model.Company) (*model.Company, error)

	// UserCounts returns the number of users attached to each company.
	UserCounts(ctx context.Context) ([]model.CompanyUserCount, error)

	// Delete removes a company by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
