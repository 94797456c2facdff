package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docflow/internal/config"
	"docflow/internal/drive"
	"docflow/internal/model"
	"docflow/internal/repository"
)

// stageBlockSize is the copy granularity while streaming a request body to
// the staging file. The size ceiling is enforced per block, so an oversize
// upload is aborted mid-stream instead of after the last byte.
const stageBlockSize = 1024 * 1024

// RelayQueue accepts mirror jobs for staged files.
type RelayQueue interface {
	Enqueue(job drive.Job) bool
}

// UploadInput carries request metadata alongside the content stream.
type UploadInput struct {
	OriginalFilename string
	ContentType      string
	DocumentName     string
	RequestID        *string
	UploadedBy       string
	CompanyID        string
}

// UpdateDocumentInput holds the mutable document fields. Nil means keep.
// OriginalFilename and ContentType describe the replacement content and are
// only consulted when a new stream is supplied.
type UpdateDocumentInput struct {
	DocumentName     *string
	RequestID        *string
	OriginalFilename string
	ContentType      string
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stages the content locally in fixed-size blocks, records the
	// document with a pending relay status and enqueues the mirror job.
	// The content type is checked before any byte reaches disk; the size
	// ceiling aborts the transfer mid-stream.
	Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Update applies a partial metadata update. A non-nil reader replaces
	// the stored content under the same staging and relay rules as Upload;
	// the remote copy is overwritten under the original generated name.
	Update(ctx context.Context, id string, r io.Reader, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes a document record by ID.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo     repository.DocumentRepository
	requests repository.RequestRepository
	relay    RelayQueue
	cfg      config.UploadConfig
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, requests repository.RequestRepository, relay RelayQueue, cfg config.UploadConfig) DocumentService {
	return &documentService{repo: repo, requests: requests, relay: relay, cfg: cfg}
}

func (s *documentService) allowedType(contentType string) bool {
	for _, m := range s.cfg.AllowedMIMEs {
		if m == contentType {
			return true
		}
	}
	return false
}

// stage copies r to a fresh file under the staging dir, enforcing the size
// ceiling per block. On any failure the partial file is removed.
func (s *documentService) stage(r io.Reader, path string) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, fmt.Errorf("create staging file: %w", err)
	}

	var written int64
	buf := make([]byte, stageBlockSize)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if written+int64(n) > s.cfg.MaxSizeBytes {
				f.Close()
				os.Remove(path)
				return 0, ErrPayloadTooLarge
			}
			if _, err := f.Write(buf[:n]); err != nil {
				f.Close()
				os.Remove(path)
				return 0, fmt.Errorf("write staging file: %w", err)
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			os.Remove(path)
			return 0, fmt.Errorf("read upload stream: %w", readErr)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("close staging file: %w", err)
	}
	return written, nil
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	// Reject before anything touches disk.
	if !s.allowedType(in.ContentType) {
		return nil, ErrUnsupportedMedia
	}

	// Stored name is UUID + original extension; the original name survives
	// only as document metadata.
	ext := filepath.Ext(in.OriginalFilename)
	genName := uuid.New().String() + ext
	tempPath := filepath.Join(s.cfg.TempDir, genName)

	size, err := s.stage(r, tempPath)
	if err != nil {
		return nil, err
	}

	name := in.DocumentName
	if name == "" {
		name = in.OriginalFilename
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:           uuid.New().String(),
		RequestID:    in.RequestID,
		UploadedBy:   in.UploadedBy,
		CompanyID:    in.CompanyID,
		DocumentName: name,
		DocumentPath: "Documents/" + genName,
		FileSize:     size,
		MimeType:     in.ContentType,
		RelayStatus:  model.RelayPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: drop the staged file so nothing orphaned remains.
		if delErr := os.Remove(tempPath); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback staging delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// The document exists from here on, so the mirror job is enqueued no
	// matter what happens to the request bookkeeping below.
	s.relay.Enqueue(drive.Job{
		DocumentID: stored.ID,
		TempPath:   tempPath,
		RemoteName: genName,
	})

	// Fulfilling an open request flips it to uploaded. A failure here does
	// not undo the upload; the request can be reconciled later.
	if in.RequestID != nil {
		if err := s.requests.MarkUploaded(ctx, *in.RequestID, now); err != nil {
			return nil, fmt.Errorf("mark request uploaded: %w", err)
		}
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Update fetches the document and applies only the provided fields. When a
// replacement stream is given it is staged under the document's original
// generated name, so the relay overwrites the prior remote copy in place.
func (s *documentService) Update(ctx context.Context, id string, r io.Reader, in UpdateDocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var enqueue *drive.Job
	if r != nil {
		if !s.allowedType(in.ContentType) {
			return nil, ErrUnsupportedMedia
		}

		genName := filepath.Base(doc.DocumentPath)
		tempPath := filepath.Join(s.cfg.TempDir, genName)
		// A stale staging file from a still-pending relay would block the
		// exclusive create.
		os.Remove(tempPath)

		size, err := s.stage(r, tempPath)
		if err != nil {
			return nil, err
		}
		doc.FileSize = size
		doc.MimeType = in.ContentType
		doc.RelayStatus = model.RelayPending
		enqueue = &drive.Job{
			DocumentID: doc.ID,
			TempPath:   tempPath,
			RemoteName: genName,
		}
	}

	if in.DocumentName != nil {
		doc.DocumentName = *in.DocumentName
	}
	if in.RequestID != nil {
		doc.RequestID = in.RequestID
	}
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, doc)
	if err != nil {
		if enqueue != nil {
			os.Remove(enqueue.TempPath)
		}
		return nil, err
	}
	if enqueue != nil {
		s.relay.Enqueue(*enqueue)
	}
	return stored, nil
}

// Delete removes a document record by ID.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
