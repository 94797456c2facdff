package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// CreateCompanyInput is the payload for registering a company.
type CreateCompanyInput struct {
	CompanyName      string
	YearOfAssignment *int
	StartAuditPeriod *time.Time
	EndAuditPeriod   *time.Time
}

// UpdateCompanyInput holds the mutable company fields. Nil means keep.
type UpdateCompanyInput struct {
	CompanyName      *string
	YearOfAssignment *int
	StartAuditPeriod *time.Time
	EndAuditPeriod   *time.Time
}

// CompanyListResult is the service-level DTO for paginated companies.
type CompanyListResult struct {
	Items []model.Company `json:"data"`
	Total int             `json:"total"`
}

// CompanyService defines the use cases for managing tenant companies.
type CompanyService interface {
	// Create registers a new company.
	Create(ctx context.Context, in CreateCompanyInput) (*model.Company, error)

	// Get returns a single company by its ID.
	Get(ctx context.Context, id string) (*model.Company, error)

	// List returns companies using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*CompanyListResult, error)

	// Update applies a partial update to a company.
	Update(ctx context.Context, id string, in UpdateCompanyInput) (*model.Company, error)

	// UserCountSummary returns the per-company user membership counts.
	UserCountSummary(ctx context.Context) ([]model.CompanyUserCount, error)

	// Delete removes a company by ID.
	Delete(ctx context.Context, id string) error
}

type companyService struct {
	repo repository.CompanyRepository
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Create(ctx context.Context, in CreateCompanyInput) (*model.Company, error) {
	now := time.Now().UTC()
	c := &model.Company{
		ID:               uuid.New().String(),
		CompanyName:      in.CompanyName,
		YearOfAssignment: in.YearOfAssignment,
		StartAuditPeriod: in.StartAuditPeriod,
		EndAuditPeriod:   in.EndAuditPeriod,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.repo.Create(ctx, c)
}

func (s *companyService) Get(ctx context.Context, id string) (*model.Company, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *companyService) List(ctx context.Context, limit, offset int) (*CompanyListResult, error) {
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
	return &CompanyListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *companyService) Update(ctx context.Context, id string, in UpdateCompanyInput) (*model.Company, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.CompanyName != nil {
		c.CompanyName = *in.CompanyName
	}
	if in.YearOfAssignment != nil {
		c.YearOfAssignment = in.YearOfAssignment
	}
	if in.StartAuditPeriod != nil {
		c.StartAuditPeriod = in.StartAuditPeriod
	}
	if in.EndAuditPeriod != nil {
		c.EndAuditPeriod = in.EndAuditPeriod
	}
	c.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, c)
}

func (s *companyService) UserCountSummary(ctx context.Context) ([]model.CompanyUserCount, error) {
	return s.repo.UserCounts(ctx)
}

func (s *companyService) Delete(ctx context.Context, id string) error {
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
