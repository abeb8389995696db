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

// IChangeRequestRepository defines the interface for supervisor change
// request database operations
type IChangeRequestRepository interface {
	Create(ctx context.Context, request *models.SupervisorChangeRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SupervisorChangeRequest, error)
	HasPending(ctx context.Context, groupID int64) (bool, error)
	ResolveTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error
	ListPendingBySchool(ctx context.Context, school string) ([]*models.SupervisorChangeRequest, error)
	ListPendingByCurrentSupervisor(ctx context.Context, supervisorID int64) ([]*models.SupervisorChangeRequest, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*models.SupervisorChangeRequest, error)
	DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID int64) error
}

// ChangeRequestRepository handles supervisor change request database operations
type ChangeRequestRepository struct {
	db *pgxpool.Pool
}

// NewChangeRequestRepository creates a new ChangeRequestRepository
func NewChangeRequestRepository(db *pgxpool.Pool) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: db}
}

const changeRequestColumns = `id, group_id, current_supervisor_id, new_supervisor_id, reason, status, created_at, processed_at`

func scanChangeRequest(row pgx.Row) (*models.SupervisorChangeRequest, error) {
	cr := &models.SupervisorChangeRequest{}
	err := row.Scan(&cr.ID, &cr.GroupID, &cr.CurrentSupervisorID, &cr.NewSupervisorID,
		&cr.Reason, &cr.Status, &cr.CreatedAt, &cr.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// Create inserts a pending change request
func (r *ChangeRequestRepository) Create(ctx context.Context, request *models.SupervisorChangeRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO supervisor_change_requests
			(group_id, current_supervisor_id, new_supervisor_id, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		request.GroupID, request.CurrentSupervisorID, request.NewSupervisorID,
		request.Reason, models.StatusPending).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating change request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a change request by ID
func (r *ChangeRequestRepository) GetByID(ctx context.Context, id int64) (*models.SupervisorChangeRequest, error) {
	request, err := scanChangeRequest(r.db.QueryRow(ctx,
		`SELECT `+changeRequestColumns+` FROM supervisor_change_requests WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChangeRequestNotFound
		}
		return nil, fmt.Errorf("error fetching change request: %w", err)
	}

	return request, nil
}

// HasPending reports whether the group has an unresolved change request
func (r *ChangeRequestRepository) HasPending(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM supervisor_change_requests
			WHERE group_id = $1 AND status = $2
		)`,
		groupID, models.StatusPending).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking pending change request: %w", err)
	}

	return exists, nil
}

// ResolveTx settles a pending change request and stamps the decision time
func (r *ChangeRequestRepository) ResolveTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE supervisor_change_requests
		SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3`,
		status, id, models.StatusPending)

	if err != nil {
		return fmt.Errorf("error resolving change request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChangeRequestNotFound
	}

	return nil
}

// ListPendingBySchool returns pending change requests for groups whose
// members belong to the given school
func (r *ChangeRequestRepository) ListPendingBySchool(ctx context.Context, school string) ([]*models.SupervisorChangeRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT cr.id, cr.group_id, cr.current_supervisor_id, cr.new_supervisor_id,
		       cr.reason, cr.status, cr.created_at, cr.processed_at
		FROM supervisor_change_requests cr
		JOIN students s ON s.group_id = cr.group_id
		WHERE s.school = $1 AND cr.status = $2
		ORDER BY cr.created_at DESC`,
		school, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing school change requests: %w", err)
	}
	defer rows.Close()

	return collectChangeRequests(rows)
}

// ListPendingByCurrentSupervisor returns pending change requests naming the
// supervisor as the one being replaced
func (r *ChangeRequestRepository) ListPendingByCurrentSupervisor(ctx context.Context, supervisorID int64) ([]*models.SupervisorChangeRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+changeRequestColumns+`
		FROM supervisor_change_requests
		WHERE current_supervisor_id = $1 AND status = $2
		ORDER BY created_at DESC`,
		supervisorID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing change requests: %w", err)
	}
	defer rows.Close()

	return collectChangeRequests(rows)
}

// ListByGroup returns every change request a group has opened
func (r *ChangeRequestRepository) ListByGroup(ctx context.Context, groupID int64) ([]*models.SupervisorChangeRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+changeRequestColumns+`
		FROM supervisor_change_requests
		WHERE group_id = $1
		ORDER BY created_at DESC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group change requests: %w", err)
	}
	defer rows.Close()

	return collectChangeRequests(rows)
}

// DeleteByGroupTx removes all change requests of a dissolving group
func (r *ChangeRequestRepository) DeleteByGroupTx(ctx context.Context, tx pgx.Tx, groupID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM supervisor_change_requests WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("error deleting group change requests: %w", err)
	}

	return nil
}

func collectChangeRequests(rows pgx.Rows) ([]*models.SupervisorChangeRequest, error) {
	var requests []*models.SupervisorChangeRequest
	for rows.Next() {
		request, err := scanChangeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning change request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}
	return requests, nil
}
