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

// ISupervisorRequestRepository defines the interface for supervision request
// database operations
type ISupervisorRequestRepository interface {
	Create(ctx context.Context, request *models.SupervisorRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SupervisorRequest, error)
	CountPendingByGroup(ctx context.Context, groupID int64) (int, error)
	ExistsPending(ctx context.Context, groupID, supervisorID int64) (bool, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error
	RejectOtherPendingTx(ctx context.Context, tx pgx.Tx, groupID, acceptedID int64) error
	ListPendingBySupervisor(ctx context.Context, supervisorID int64) ([]*models.SupervisorRequest, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*models.SupervisorRequest, error)
	DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID int64) error
}

// SupervisorRequestRepository handles supervision request database operations
type SupervisorRequestRepository struct {
	db *pgxpool.Pool
}

// NewSupervisorRequestRepository creates a new SupervisorRequestRepository
func NewSupervisorRequestRepository(db *pgxpool.Pool) *SupervisorRequestRepository {
	return &SupervisorRequestRepository{db: db}
}

// Create inserts a pending supervision request
func (r *SupervisorRequestRepository) Create(ctx context.Context, request *models.SupervisorRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO supervisor_requests (group_id, supervisor_id, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		request.GroupID, request.SupervisorID, models.StatusPending).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating supervision request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a supervision request by ID
func (r *SupervisorRequestRepository) GetByID(ctx context.Context, id int64) (*models.SupervisorRequest, error) {
	request := &models.SupervisorRequest{}
	err := r.db.QueryRow(ctx, `
		SELECT id, group_id, supervisor_id, status, sent_at
		FROM supervisor_requests WHERE id = $1`, id).
		Scan(&request.ID, &request.GroupID, &request.SupervisorID, &request.Status, &request.SentAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error fetching supervision request: %w", err)
	}

	return request, nil
}

// CountPendingByGroup counts a group's outstanding supervision requests
func (r *SupervisorRequestRepository) CountPendingByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM supervisor_requests
		WHERE group_id = $1 AND status = $2`,
		groupID, models.StatusPending).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}

	return count, nil
}

// ExistsPending reports whether the group already has a pending request to
// the supervisor
func (r *SupervisorRequestRepository) ExistsPending(ctx context.Context, groupID, supervisorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM supervisor_requests
			WHERE group_id = $1 AND supervisor_id = $2 AND status = $3
		)`,
		groupID, supervisorID, models.StatusPending).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking pending request: %w", err)
	}

	return exists, nil
}

// UpdateStatusTx transitions a pending request inside a transaction
func (r *SupervisorRequestRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE supervisor_requests SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, models.StatusPending)

	if err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// RejectOtherPendingTx rejects every pending request of the group except the
// accepted one. Runs in the same transaction as the acceptance.
func (r *SupervisorRequestRepository) RejectOtherPendingTx(ctx context.Context, tx pgx.Tx, groupID, acceptedID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE supervisor_requests SET status = $1
		WHERE group_id = $2 AND id <> $3 AND status = $4`,
		models.StatusRejected, groupID, acceptedID, models.StatusPending)

	if err != nil {
		return fmt.Errorf("error rejecting sibling requests: %w", err)
	}

	return nil
}

// ListPendingBySupervisor returns pending requests addressed to a supervisor
func (r *SupervisorRequestRepository) ListPendingBySupervisor(ctx context.Context, supervisorID int64) ([]*models.SupervisorRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, group_id, supervisor_id, status, sent_at
		FROM supervisor_requests
		WHERE supervisor_id = $1 AND status = $2
		ORDER BY sent_at DESC`,
		supervisorID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	defer rows.Close()

	return collectSupervisorRequests(rows)
}

// ListByGroup returns every supervision request a group has sent
func (r *SupervisorRequestRepository) ListByGroup(ctx context.Context, groupID int64) ([]*models.SupervisorRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, group_id, supervisor_id, status, sent_at
		FROM supervisor_requests
		WHERE group_id = $1
		ORDER BY sent_at DESC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group requests: %w", err)
	}
	defer rows.Close()

	return collectSupervisorRequests(rows)
}

// DeleteByGroupTx removes all supervision requests of a dissolving group
func (r *SupervisorRequestRepository) DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM supervisor_requests WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("error deleting group requests: %w", err)
	}

	return nil
}

func collectSupervisorRequests(rows pgx.Rows) ([]*models.SupervisorRequest, error) {
	var requests []*models.SupervisorRequest
	for rows.Next() {
		request := &models.SupervisorRequest{}
		err := rows.Scan(&request.ID, &request.GroupID, &request.SupervisorID, &request.Status, &request.SentAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}
	return requests, nil
}
