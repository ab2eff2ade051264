package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridloal/skincare-store-api/internal/admin/domain"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
)

var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminConflict = errors.New("admin with this username already exists")

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetAdminByID(ctx context.Context, id string) (*domain.Admin, error)
}

type postgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) AdminRepository {
	return &postgresAdminRepository{db: db}
}

func (r *postgresAdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := `INSERT INTO admins (username, password_hash, created_at)
              VALUES ($1, $2, $3) RETURNING id, created_at`

	admin.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query, admin.Username, admin.PasswordHash, admin.CreatedAt).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAdminConflict
		}
		logger.Error("CreateAdmin: failed to insert admin", err)
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is Postgres unique_violation
// (code 23505). The pgx driver surfaces constraint errors as
// *pgconn.PgError, possibly wrapped.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresAdminRepository) getAdminBy(ctx context.Context, field, value string) (*domain.Admin, error) {
	query := `SELECT id, username, password_hash, created_at FROM admins WHERE ` + field + ` = $1`
	admin := &domain.Admin{}

	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		logger.Error("GetAdminBy"+field+": query failed", err)
		return nil, err
	}
	return admin, nil
}

func (r *postgresAdminRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.getAdminBy(ctx, "username", username)
}

func (r *postgresAdminRepository) GetAdminByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.getAdminBy(ctx, "id", id)
}
