package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, username string) (string, error) {
	args := m.Called(ctx, r, filename, contentType, size, username)
	return args.String(0), args.Error(1)
}
