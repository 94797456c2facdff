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

func requestRows(reqs ...*model.DocumentRequest) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "request_title", "request_desc", "admin_id", "target_user_id",
		"category_id", "due_date", "upload_date", "status", "created_at", "updated_at",
	})
	for _, dr := range reqs {
		rows.AddRow(dr.ID, dr.RequestTitle, dr.RequestDesc, dr.AdminID, dr.TargetUserID,
			dr.CategoryID, dr.DueDate, dr.UploadDate, dr.Status, dr.CreatedAt, dr.UpdatedAt)
	}
	return rows
}

func testRequest() *model.DocumentRequest {
	now := time.Now().UTC()
	return &model.DocumentRequest{
		ID:           "req-1",
		RequestTitle: "FY25 audit report",
		RequestDesc:  "Upload the signed audit report",
		AdminID:      "admin-1",
		TargetUserID: "user-1",
		CategoryID:   "cat-1",
		DueDate:      now.Add(72 * time.Hour),
		Status:       model.RequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRequestPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRequestPostgres(db)
	ctx := context.Background()
	dr := testRequest()

	mock.ExpectQuery("INSERT INTO document_requests").
		WithArgs(dr.ID, dr.RequestTitle, dr.RequestDesc, dr.AdminID, dr.TargetUserID,
			dr.CategoryID, dr.DueDate, dr.UploadDate, dr.Status, dr.CreatedAt, dr.UpdatedAt).
		WillReturnRows(requestRows(dr))

	result, err := repo.Create(ctx, dr)

	assert.NoError(t, err)
	assert.Equal(t, model.RequestPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRequestPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		dr := testRequest()
		mock.ExpectQuery("SELECT (.+) FROM document_requests").
			WithArgs(dr.ID).
			WillReturnRows(requestRows(dr))

		result, err := repo.FindByID(ctx, dr.ID)
		assert.NoError(t, err)
		assert.Equal(t, dr.RequestTitle, result.RequestTitle)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_requests").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRequestPostgres(db)
	ctx := context.Background()
	dr := testRequest()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM document_requests").
		WithArgs(10, 0).
		WillReturnRows(requestRows(dr))

	result, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestPostgres_MarkUploaded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRequestPostgres(db)
	ctx := context.Background()
	uploadDate := time.Now().UTC()

	mock.ExpectExec("UPDATE document_requests SET status").
		WithArgs("req-1", uploadDate).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkUploaded(ctx, "req-1", uploadDate)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
