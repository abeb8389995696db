package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// ITokenRepository defines the interface for refresh token database operations
type ITokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) (int64, error)
	GetByValue(ctx context.Context, value string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, value string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a refresh token
func (r *TokenRepository) Create(ctx context.Context, token *models.RefreshToken) (int64, error) {
	query, args, err := r.sb.
		Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(token.UserID, token.Token, token.ExpiresAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building token insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating refresh token: %w", err)
	}

	return id, nil
}

// GetByValue retrieves a refresh token by its value, distinguishing revoked
// and expired tokens from unknown ones
func (r *TokenRepository) GetByValue(ctx context.Context, value string) (*models.RefreshToken, error) {
	query, args, err := r.sb.
		Select("id", "user_id", "token", "expires_at", "created_at", "revoked").
		From("refresh_tokens").
		Where(sq.Eq{"token": value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building token query: %w", err)
	}

	token := &models.RefreshToken{}
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &token.CreatedAt, &token.Revoked)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error fetching refresh token: %w", err)
	}

	if token.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	return token, nil
}

// Revoke marks a refresh token as revoked
func (r *TokenRepository) Revoke(ctx context.Context, value string) error {
	query, args, err := r.sb.
		Update("refresh_tokens").
		Set("revoked", true).
		Where(sq.Eq{"token": value}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building token revoke: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllForUser revokes every live refresh token of a user, used after a
// password reset
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	query, args, err := r.sb.
		Update("refresh_tokens").
		Set("revoked", true).
		Where(sq.Eq{"user_id": userID, "revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building token revoke: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// DeleteExpired purges tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error purging expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
