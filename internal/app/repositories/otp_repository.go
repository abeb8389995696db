package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// IOTPRepository defines the interface for verification code database operations
type IOTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) (int64, error)
	GetLatestMatching(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.OTP, error)
	MarkUsedTx(ctx context.Context, tx pgx.Tx, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPRepository handles verification code database operations
type OTPRepository struct {
	db *pgxpool.Pool
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create inserts a verification code
func (r *OTPRepository) Create(ctx context.Context, otp *models.OTP) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO otps (email, code, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		otp.Email, otp.Code, otp.Purpose, otp.ExpiresAt).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating verification code: %w", err)
	}

	return id, nil
}

// GetLatestMatching returns the newest unused code row matching the submitted
// value. Several valid codes may coexist for an address; any of them verifies.
func (r *OTPRepository) GetLatestMatching(ctx context.Context, email string, purpose models.OTPPurpose, code string) (*models.OTP, error) {
	otp := &models.OTP{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, code, purpose, created_at, expires_at, used
		FROM otps
		WHERE email = $1 AND purpose = $2 AND code = $3 AND used = FALSE
		ORDER BY created_at DESC
		LIMIT 1`,
		email, purpose, code).
		Scan(&otp.ID, &otp.Email, &otp.Code, &otp.Purpose, &otp.CreatedAt, &otp.ExpiresAt, &otp.Used)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOTPInvalid
		}
		return nil, fmt.Errorf("error fetching verification code: %w", err)
	}

	return otp, nil
}

// MarkUsedTx consumes a code inside a transaction so the same row cannot
// verify twice.
func (r *OTPRepository) MarkUsedTx(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE otps SET used = TRUE WHERE id = $1 AND used = FALSE`, id)

	if err != nil {
		return fmt.Errorf("error consuming verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOTPInvalid
	}

	return nil
}

// DeleteExpired purges codes past their expiry
func (r *OTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM otps WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error purging expired codes: %w", err)
	}

	return tag.RowsAffected(), nil
}
