package mocks

import (
	"context"

	"github.com/ridloal/skincare-store-api/internal/admin/domain"
	"github.com/stretchr/testify/mock"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error) {
	args := m.Called(ctx, req)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminService) Authenticate(ctx context.Context, tokenString string) (*domain.Admin, error) {
	args := m.Called(ctx, tokenString)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}
