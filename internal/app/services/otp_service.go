// Package services contains the business rules layered over the repositories.
package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/email"
	"github.com/arjun/projecthub/internal/pkg/logger"
)

// IOTPService defines the interface for one-time verification codes
type IOTPService interface {
	IssueCode(ctx context.Context, emailAddr string, purpose models.OTPPurpose) error
	ConsumeCodeTx(ctx context.Context, tx pgx.Tx, emailAddr string, purpose models.OTPPurpose, code string) error
}

// OTPService issues and verifies emailed one-time codes
type OTPService struct {
	otpRepository repositories.IOTPRepository
	mailer        email.Service
}

// NewOTPService creates a new OTPService
func NewOTPService(otpRepository repositories.IOTPRepository, mailer email.Service) *OTPService {
	return &OTPService{
		otpRepository: otpRepository,
		mailer:        mailer,
	}
}

// IssueCode generates a six digit code, persists it and mails it out. A mail
// dispatch failure is logged but does not invalidate the stored code; the
// caller still gets success so the address cannot be probed through errors.
func (s *OTPService) IssueCode(ctx context.Context, emailAddr string, purpose models.OTPPurpose) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	otp := &models.OTP{
		Email:     emailAddr,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(models.OTPValidity),
	}

	if _, err := s.otpRepository.Create(ctx, otp); err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(emailAddr, code, string(purpose)); err != nil {
		logger.Warn().Err(err).Str("email", emailAddr).Msg("Failed to dispatch verification code email")
	}

	return nil
}

// ConsumeCodeTx validates a submitted code and consumes it within the given
// transaction. Any unexpired, unused code issued for the address and purpose
// verifies; older codes stay valid until they expire.
func (s *OTPService) ConsumeCodeTx(ctx context.Context, tx pgx.Tx, emailAddr string, purpose models.OTPPurpose, code string) error {
	otp, err := s.otpRepository.GetLatestMatching(ctx, emailAddr, purpose, code)
	if err != nil {
		return err
	}

	if time.Now().After(otp.ExpiresAt) {
		return apperrors.ErrOTPInvalid
	}

	return s.otpRepository.MarkUsedTx(ctx, tx, otp.ID)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
