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

// ISupervisorRepository defines the interface for supervisor profile operations
type ISupervisorRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, supervisor *models.Supervisor) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Supervisor, error)
	GetByID(ctx context.Context, id int64) (*models.Supervisor, error)
	ListBySchool(ctx context.Context, school string) ([]*models.Supervisor, error)
}

// SupervisorRepository handles supervisor profile database operations
type SupervisorRepository struct {
	db *pgxpool.Pool
}

// NewSupervisorRepository creates a new SupervisorRepository
func NewSupervisorRepository(db *pgxpool.Pool) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

// CreateTx inserts a supervisor profile inside the given transaction.
func (r *SupervisorRepository) CreateTx(ctx context.Context, tx pgx.Tx, supervisor *models.Supervisor) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO supervisors (user_id, name, domain, school)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		supervisor.UserID, supervisor.Name, supervisor.Domain, supervisor.School).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating supervisor: %w", err)
	}

	return id, nil
}

// GetByUserID retrieves a supervisor profile by account ID
func (r *SupervisorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Supervisor, error) {
	s := &models.Supervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, domain, school
		FROM supervisors
		WHERE user_id = $1`,
		userID).Scan(&s.ID, &s.UserID, &s.Name, &s.Domain, &s.School)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error fetching supervisor by user id: %w", err)
	}

	return s, nil
}

// GetByID retrieves a supervisor profile by ID
func (r *SupervisorRepository) GetByID(ctx context.Context, id int64) (*models.Supervisor, error) {
	s := &models.Supervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, domain, school
		FROM supervisors
		WHERE id = $1`,
		id).Scan(&s.ID, &s.UserID, &s.Name, &s.Domain, &s.School)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		return nil, fmt.Errorf("error fetching supervisor by id: %w", err)
	}

	return s, nil
}

// ListBySchool returns every supervisor registered in a school
func (r *SupervisorRepository) ListBySchool(ctx context.Context, school string) ([]*models.Supervisor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, domain, school
		FROM supervisors
		WHERE school = $1
		ORDER BY name`, school)
	if err != nil {
		return nil, fmt.Errorf("error listing supervisors: %w", err)
	}
	defer rows.Close()

	var supervisors []*models.Supervisor
	for rows.Next() {
		s := &models.Supervisor{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Domain, &s.School); err != nil {
			return nil, fmt.Errorf("error scanning supervisor: %w", err)
		}
		supervisors = append(supervisors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supervisors: %w", err)
	}

	return supervisors, nil
}
