package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/dberrors"
)

// IUserRepository defines the interface for account database operations
type IUserRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePasswordTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string) error
}

// UserRepository handles account database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateTx inserts a new account inside the given transaction.
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		user.Email, user.Password, user.Role).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, role, created_at
		FROM users
		WHERE email = $1`,
		email).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, role, created_at
		FROM users
		WHERE id = $1`,
		id).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user by id: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UpdatePasswordTx replaces the stored credential hash inside the given
// transaction; the caller marks the corresponding OTP used in the same one.
func (r *UserRepository) UpdatePasswordTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE users SET password = $1 WHERE id = $2`,
		passwordHash, userID)

	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
