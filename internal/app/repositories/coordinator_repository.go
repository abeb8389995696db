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

// ICoordinatorRepository defines the interface for coordinator profile operations
type ICoordinatorRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, coordinator *models.Coordinator) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Coordinator, error)
	CountBySchool(ctx context.Context, school string) (int, error)
}

// CoordinatorRepository handles coordinator profile database operations
type CoordinatorRepository struct {
	db *pgxpool.Pool
}

// NewCoordinatorRepository creates a new CoordinatorRepository
func NewCoordinatorRepository(db *pgxpool.Pool) *CoordinatorRepository {
	return &CoordinatorRepository{db: db}
}

// CreateTx inserts a coordinator profile inside the given transaction.
func (r *CoordinatorRepository) CreateTx(ctx context.Context, tx pgx.Tx, coordinator *models.Coordinator) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO coordinators (user_id, name, school)
		VALUES ($1, $2, $3)
		RETURNING id`,
		coordinator.UserID, coordinator.Name, coordinator.School).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating coordinator: %w", err)
	}

	return id, nil
}

// GetByUserID retrieves a coordinator profile by account ID
func (r *CoordinatorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Coordinator, error) {
	c := &models.Coordinator{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, school
		FROM coordinators
		WHERE user_id = $1`,
		userID).Scan(&c.ID, &c.UserID, &c.Name, &c.School)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error fetching coordinator by user id: %w", err)
	}

	return c, nil
}

// CountBySchool returns the number of coordinators registered for a school
func (r *CoordinatorRepository) CountBySchool(ctx context.Context, school string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM coordinators WHERE school = $1`,
		school).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting coordinators: %w", err)
	}

	return count, nil
}
