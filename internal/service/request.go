package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// CreateRequestInput is the payload for opening a document request.
type CreateRequestInput struct {
	RequestTitle string
	RequestDesc  string
	AdminID      string
	TargetUserID string
	CategoryID   string
	DueDate      time.Time
}

// UpdateRequestInput holds the mutable request fields. Nil means keep.
type UpdateRequestInput struct {
	RequestTitle *string
	RequestDesc  *string
	DueDate      *time.Time
}

// RequestListResult is the service-level DTO for paginated requests.
type RequestListResult struct {
	Items []model.DocumentRequest `json:"data"`
	Total int                     `json:"total"`
}

// RequestService defines the use cases for document requests.
type RequestService interface {
	// Create opens a request. Only admins may create requests, the target
	// user must exist and the due date may not lie in the past.
	Create(ctx context.Context, actorRole model.Role, in CreateRequestInput) (*model.DocumentRequest, error)

	// List returns requests using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*RequestListResult, error)

	// Get returns a single request by its ID.
	Get(ctx context.Context, id string) (*model.DocumentRequest, error)

	// Update applies a partial update to a request.
	Update(ctx context.Context, id string, in UpdateRequestInput) (*model.DocumentRequest, error)

	// Delete removes a request by ID.
	Delete(ctx context.Context, id string) error
}

type requestService struct {
	repo  repository.RequestRepository
	users repository.UserRepository
}

// NewRequestService constructs a new RequestService.
func NewRequestService(repo repository.RequestRepository, users repository.UserRepository) RequestService {
	return &requestService{repo: repo, users: users}
}

func (s *requestService) Create(ctx context.Context, actorRole model.Role, in CreateRequestInput) (*model.DocumentRequest, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrAdminOnly
	}

	if _, err := s.users.FindByID(ctx, in.TargetUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("target user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup target user: %w", err)
	}

	now := time.Now().UTC()
	if in.DueDate.Before(now) {
		return nil, ErrDueDatePast
	}

	req := &model.DocumentRequest{
		ID:           uuid.New().String(),
		RequestTitle: in.RequestTitle,
		RequestDesc:  in.RequestDesc,
		AdminID:      in.AdminID,
		TargetUserID: in.TargetUserID,
		CategoryID:   in.CategoryID,
		DueDate:      in.DueDate,
		Status:       model.RequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, req)
}

func (s *requestService) List(ctx context.Context, limit, offset int) (*RequestListResult, error) {
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
	return &RequestListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *requestService) Get(ctx context.Context, id string) (*model.DocumentRequest, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *requestService) Update(ctx context.Context, id string, in UpdateRequestInput) (*model.DocumentRequest, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.RequestTitle != nil {
		req.RequestTitle = *in.RequestTitle
	}
	if in.RequestDesc != nil {
		req.RequestDesc = *in.RequestDesc
	}
	if in.DueDate != nil {
		req.DueDate = *in.DueDate
	}
	req.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, req)
}

func (s *requestService) Delete(ctx context.Context, id string) error {
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
