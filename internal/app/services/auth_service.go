package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/auth"
	"github.com/arjun/projecthub/internal/pkg/logger"
	"github.com/arjun/projecthub/internal/pkg/validation"
)

// IAuthService defines the interface for registration and session management
type IAuthService interface {
	SendOTP(ctx context.Context, emailAddr string, purpose models.OTPPurpose) error
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error)
	RegisterSupervisor(ctx context.Context, req *dto.RegisterSupervisorRequest) (*dto.RegisterResponse, error)
	RegisterCoordinator(ctx context.Context, req *dto.RegisterCoordinatorRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Logout(ctx context.Context, refreshToken string) error
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	txRunner              db.TxRunner
	userRepository        repositories.IUserRepository
	studentRepository     repositories.IStudentRepository
	supervisorRepository  repositories.ISupervisorRepository
	coordinatorRepository repositories.ICoordinatorRepository
	tokenRepository       repositories.ITokenRepository
	otpService            IOTPService
	jwtService            *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	txRunner db.TxRunner,
	userRepository repositories.IUserRepository,
	studentRepository repositories.IStudentRepository,
	supervisorRepository repositories.ISupervisorRepository,
	coordinatorRepository repositories.ICoordinatorRepository,
	tokenRepository repositories.ITokenRepository,
	otpService IOTPService,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		txRunner:              txRunner,
		userRepository:        userRepository,
		studentRepository:     studentRepository,
		supervisorRepository:  supervisorRepository,
		coordinatorRepository: coordinatorRepository,
		tokenRepository:       tokenRepository,
		otpService:            otpService,
		jwtService:            jwtService,
	}
}

// SendOTP mails a verification code for the given flow. For registration the
// address must not be taken yet; for password reset the response never
// reveals whether the address exists.
func (s *AuthService) SendOTP(ctx context.Context, emailAddr string, purpose models.OTPPurpose) error {
	exists, err := s.userRepository.EmailExists(ctx, emailAddr)
	if err != nil {
		return err
	}

	switch purpose {
	case models.OTPPurposeRegistration:
		if exists {
			return apperrors.ErrEmailAlreadyExists
		}
	case models.OTPPurposePasswordReset:
		if !exists {
			logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown address")
			return nil
		}
	default:
		return apperrors.ErrBadRequest
	}

	return s.otpService.IssueCode(ctx, emailAddr, purpose)
}

// RegisterStudent creates a student account after consuming a registration
// code. Account, profile and code consumption commit atomically.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error) {
	if !validation.IsValidRollNumber(req.RollNumber) {
		return nil, apperrors.ErrValidationFailed
	}

	taken, err := s.studentRepository.RollNumberExists(ctx, req.RollNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrRollNumberExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var userID int64
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.otpService.ConsumeCodeTx(ctx, tx, req.Email, models.OTPPurposeRegistration, req.OTP); err != nil {
			return err
		}

		userID, err = s.userRepository.CreateTx(ctx, tx, &models.User{
			Email:    req.Email,
			Password: hash,
			Role:     models.RoleStudent,
		})
		if err != nil {
			return err
		}

		_, err = s.studentRepository.CreateTx(ctx, tx, &models.Student{
			UserID:     userID,
			Name:       req.Name,
			RollNumber: req.RollNumber,
			Year:       req.Year,
			School:     req.School,
			Branch:     req.Branch,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: userID, Email: req.Email, Role: string(models.RoleStudent)}, nil
}

// RegisterSupervisor creates a supervisor account after consuming a
// registration code.
func (s *AuthService) RegisterSupervisor(ctx context.Context, req *dto.RegisterSupervisorRequest) (*dto.RegisterResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var userID int64
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.otpService.ConsumeCodeTx(ctx, tx, req.Email, models.OTPPurposeRegistration, req.OTP); err != nil {
			return err
		}

		userID, err = s.userRepository.CreateTx(ctx, tx, &models.User{
			Email:    req.Email,
			Password: hash,
			Role:     models.RoleSupervisor,
		})
		if err != nil {
			return err
		}

		_, err = s.supervisorRepository.CreateTx(ctx, tx, &models.Supervisor{
			UserID: userID,
			Name:   req.Name,
			Domain: req.Domain,
			School: req.School,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: userID, Email: req.Email, Role: string(models.RoleSupervisor)}, nil
}

// RegisterCoordinator creates a coordinator account. Each school admits at
// most MaxCoordinatorsPerSchool coordinators.
func (s *AuthService) RegisterCoordinator(ctx context.Context, req *dto.RegisterCoordinatorRequest) (*dto.RegisterResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var userID int64
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		count, err := s.coordinatorRepository.CountBySchool(ctx, req.School)
		if err != nil {
			return err
		}
		if count >= models.MaxCoordinatorsPerSchool {
			return apperrors.ErrCoordinatorLimitReached
		}

		if err := s.otpService.ConsumeCodeTx(ctx, tx, req.Email, models.OTPPurposeRegistration, req.OTP); err != nil {
			return err
		}

		userID, err = s.userRepository.CreateTx(ctx, tx, &models.User{
			Email:    req.Email,
			Password: hash,
			Role:     models.RoleCoordinator,
		})
		if err != nil {
			return err
		}

		_, err = s.coordinatorRepository.CreateTx(ctx, tx, &models.Coordinator{
			UserID: userID,
			Name:   req.Name,
			School: req.School,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: userID, Email: req.Email, Role: string(models.RoleCoordinator)}, nil
}

// Login verifies credentials and issues a token pair. Unknown address and
// wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token for a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepository.GetByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepository.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// ForgotPassword starts the reset flow. The response is identical whether or
// not the address is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	return s.SendOTP(ctx, emailAddr, models.OTPPurposePasswordReset)
}

// ResetPassword consumes a reset code and replaces the password. All live
// refresh tokens of the user are revoked afterwards.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrOTPInvalid
		}
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.otpService.ConsumeCodeTx(ctx, tx, req.Email, models.OTPPurposePasswordReset, req.OTP); err != nil {
			return err
		}
		return s.userRepository.UpdatePasswordTx(ctx, tx, user.ID, hash)
	})
	if err != nil {
		return err
	}

	return s.tokenRepository.RevokeAllForUser(ctx, user.ID)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepository.Revoke(ctx, refreshToken)
	if errors.Is(err, apperrors.ErrTokenNotFound) {
		// Logging out with an unknown token is not an error worth surfacing.
		return nil
	}
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	_, err = s.tokenRepository.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		Role:         string(user.Role),
	}, nil
}
