package repository

import (
	"context"

	"docflow/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Update overwrites metadata columns of an existing document row.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// UpdateRelayStatus transitions the mirror state of a document.
	UpdateRelayStatus(ctx context.Context, id string, status model.RelayStatus) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
