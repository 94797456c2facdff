package mocks

import (
	"context"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id string) (*model.DocumentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DocumentRequest], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.DocumentRequest]), args.Error(1)
}

func (m *MockRequestRepository) Update(ctx context.Context, req *model.DocumentRequest) (*model.DocumentRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepository) MarkUploaded(ctx context.Context, id string, uploadDate time.Time) error {
	args := m.Called(ctx, id, uploadDate)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
