package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(ctx context.Context, localPath, remoteName string) error {
	args := m.Called(ctx, localPath, remoteName)
	return args.Error(0)
}
