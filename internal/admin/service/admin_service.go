package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ridloal/skincare-store-api/internal/admin/domain"
	"github.com/ridloal/skincare-store-api/internal/admin/repository"
	"github.com/ridloal/skincare-store-api/internal/platform/config"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminAlreadyExists = errors.New("admin with this username already exists")
	ErrWeakPassword       = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidToken       = errors.New("invalid token")
)

type AdminService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	// Authenticate verifies a bearer token and confirms the admin still
	// exists. A deleted admin's tokens stop working immediately.
	Authenticate(ctx context.Context, tokenString string) (*domain.Admin, error)
}

type adminServiceImpl struct {
	repo      repository.AdminRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAdminService(repo repository.AdminRepository, cfg config.AuthConfig) AdminService {
	return &adminServiceImpl{
		repo:      repo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  time.Duration(cfg.TokenTTL) * time.Hour,
	}
}

func (s *adminServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Admin, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := checkPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	admin := &domain.Admin{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAdminConflict) {
			return nil, ErrAdminAlreadyExists
		}
		logger.Error("Register: failed to create admin in repo", err)
		return nil, fmt.Errorf("could not save admin: %w", err)
	}

	admin.PasswordHash = ""
	return admin, nil
}

func (s *adminServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	admin, err := s.repo.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Login: failed to get admin by username", err)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":       admin.ID,
		"username": admin.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not issue token: %w", err)
	}

	return &domain.LoginResponse{Token: tokenString}, nil
}

func (s *adminServiceImpl) Authenticate(ctx context.Context, tokenString string) (*domain.Admin, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, ErrInvalidToken
	}

	admin, err := s.repo.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidToken
		}
		logger.Error("Authenticate: failed to load admin", err)
		return nil, err
	}
	admin.PasswordHash = ""
	return admin, nil
}

// checkPasswordPolicy mirrors the back-office rule: at least one upper,
// one lower and one digit. Length is enforced by request binding.
func checkPasswordPolicy(password string) error {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
