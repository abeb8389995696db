// Package seed creates the default accounts a fresh deployment needs.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/auth"
)

// DefaultCoordinator describes the bootstrap coordinator account created on
// first startup so a fresh deployment can be administered immediately.
type DefaultCoordinator struct {
	Email    string
	Password string
	Name     string
	School   string
}

// CreateDefaultData creates the default coordinator account if it does not
// exist yet. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger, coordinator DefaultCoordinator) error {
	if coordinator.Email == "" || coordinator.Password == "" {
		lgr.Debug().Msg("No default coordinator configured, skipping seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(database.Pool)
	coordinatorRepo := repositories.NewCoordinatorRepository(database.Pool)

	_, err := userRepo.GetByEmail(ctx, coordinator.Email)
	if err == nil {
		lgr.Debug().Str("email", coordinator.Email).Msg("Default coordinator already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(coordinator.Password)
	if err != nil {
		return err
	}

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := userRepo.CreateTx(ctx, tx, &models.User{
			Email:    coordinator.Email,
			Password: hash,
			Role:     models.RoleCoordinator,
		})
		if err != nil {
			return err
		}

		_, err = coordinatorRepo.CreateTx(ctx, tx, &models.Coordinator{
			UserID: userID,
			Name:   coordinator.Name,
			School: coordinator.School,
		})
		return err
	})
	if err != nil {
		return err
	}

	lgr.Info().Str("email", coordinator.Email).Msg("Default coordinator account created")
	return nil
}
