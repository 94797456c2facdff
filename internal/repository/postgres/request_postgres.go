package postgres

import (
	"context"
	"database/sql"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// RequestPostgres is a PostgreSQL implementation of repository.RequestRepository.
type RequestPostgres struct {
	db *sql.DB
}

// NewRequestPostgres creates a new RequestPostgres repository.
func NewRequestPostgres(db *sql.DB) *RequestPostgres {
	return &RequestPostgres{db: db}
}

var _ repository.RequestRepository = (*RequestPostgres)(nil)

const requestColumns = `id, request_title, request_desc, admin_id, target_user_id, category_id, due_date, upload_date, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (*model.DocumentRequest, error) {
	var dr model.DocumentRequest
	if err := row.Scan(
		&dr.ID,
		&dr.RequestTitle,
		&dr.RequestDesc,
		&dr.AdminID,
		&dr.TargetUserID,
		&dr.CategoryID,
		&dr.DueDate,
		&dr.UploadDate,
		&dr.Status,
		&dr.CreatedAt,
		&dr.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dr, nil
}

// Create inserts a new document request row and returns the stored record.
func (r *RequestPostgres) Create(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error) {
	const q = `
		INSERT INTO document_requests (id, request_title, request_desc, admin_id, target_user_id, category_id, due_date, upload_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + requestColumns
	row := r.db.QueryRowContext(ctx, q,
		req.ID,
		req.RequestTitle,
		req.RequestDesc,
		req.AdminID,
		req.TargetUserID,
		req.CategoryID,
		req.DueDate,
		req.UploadDate,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return scanRequest(row)
}

// FindByID fetches a single document request by its ID.
func (r *RequestPostgres) FindByID(ctx context.Context, id string) (*model.DocumentRequest, error) {
	const q = `
		SELECT ` + requestColumns + `
		FROM document_requests
		WHERE id = $1
	`
	return scanRequest(r.db.QueryRowContext(ctx, q, id))
}

// List returns document requests using LIMIT/OFFSET pagination and a total count.
func (r *RequestPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DocumentRequest], error) {
	const qCount = `SELECT COUNT(*) FROM document_requests`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + requestColumns + `
		FROM document_requests
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentRequest, 0)
	for rows.Next() {
		dr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DocumentRequest]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites mutable columns of an existing request row.
func (r *RequestPostgres) Update(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error) {
	const q = `
		UPDATE document_requests
		SET request_title = $2, request_desc = $3, target_user_id = $4, category_id = $5, due_date = $6, status = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + requestColumns
	row := r.db.QueryRowContext(ctx, q,
		req.ID,
		req.RequestTitle,
		req.RequestDesc,
		req.TargetUserID,
		req.CategoryID,
		req.DueDate,
		req.Status,
		req.UpdatedAt,
	)
	return scanRequest(row)
}

// MarkUploaded sets status=uploaded and records the upload date.
func (r *RequestPostgres) MarkUploaded(ctx context.Context, id string, uploadDate time.Time) error {
	const q = `UPDATE document_requests SET status = 'uploaded', upload_date = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, uploadDate)
	return err
}

// Delete removes a document request by ID. Missing rows are not an error.
func (r *RequestPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM document_requests WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
