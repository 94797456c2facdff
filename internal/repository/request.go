package repository

import (
	"context"
	"time"

	"docflow/internal/model"
)

// RequestRepository defines data access for document requests.
type RequestRepository interface {
	// Create inserts a new document request and returns the stored row.
	Create(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error)

	// FindByID returns a document request by its ID.
	FindByID(ctx context.Context, id string) (*model.DocumentRequest, error)

	// List returns a paginated list of document requests and total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.DocumentRequest], error)

	// Update overwrites mutable columns of an existing request row.
	Update(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error)

	// MarkUploaded sets status=uploaded and records the upload date.
	MarkUploaded(ctx context.Context, id string, uploadDate time.Time) error

	// Delete removes a document request by ID.
	Delete(ctx context.Context, id string) error
}
