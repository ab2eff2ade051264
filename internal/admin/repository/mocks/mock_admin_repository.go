package mocks

import (
	"context"

	"github.com/ridloal/skincare-store-api/internal/admin/domain"
	"github.com/stretchr/testify/mock"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	if admin != nil && args.Error(0) == nil {
		admin.ID = "mock-admin-id"
	}
	return args.Error(0)
}

func (m *MockAdminRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) GetAdminByID(ctx context.Context, id string) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}
