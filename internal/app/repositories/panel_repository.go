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

// IPanelRepository defines the interface for evaluation panel database operations
type IPanelRepository interface {
	ExistsForGroup(ctx context.Context, groupID int64) (bool, error)
	CreateTx(ctx context.Context, tx pgx.Tx, groupID, createdBy int64, supervisorIDs []int64) (int64, error)
	GetByGroup(ctx context.Context, groupID int64) (*models.Panel, []*models.PanelMember, error)
	ListGroupIDsByMember(ctx context.Context, supervisorID int64) ([]int64, error)
}

// PanelRepository handles evaluation panel database operations
type PanelRepository struct {
	db *pgxpool.Pool
}

// NewPanelRepository creates a new PanelRepository
func NewPanelRepository(db *pgxpool.Pool) *PanelRepository {
	return &PanelRepository{db: db}
}

// ExistsForGroup reports whether a panel is already assigned to the group
func (r *PanelRepository) ExistsForGroup(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM panels WHERE group_id = $1)`,
		groupID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking panel existence: %w", err)
	}

	return exists, nil
}

// CreateTx inserts the panel and its members in one transaction. The unique
// constraint on group_id turns a concurrent duplicate into ErrPanelExists.
func (r *PanelRepository) CreateTx(ctx context.Context, tx pgx.Tx, groupID, createdBy int64, supervisorIDs []int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO panels (group_id, created_by)
		VALUES ($1, $2)
		RETURNING id`, groupID, createdBy).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "panels_group_id_key") {
			return 0, apperrors.ErrPanelExists
		}
		return 0, fmt.Errorf("error creating panel: %w", err)
	}

	for _, supervisorID := range supervisorIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO panel_members (panel_id, supervisor_id)
			VALUES ($1, $2)`, id, supervisorID)
		if err != nil {
			return 0, fmt.Errorf("error adding panel member: %w", err)
		}
	}

	return id, nil
}

// GetByGroup retrieves the panel assigned to a group together with its members
func (r *PanelRepository) GetByGroup(ctx context.Context, groupID int64) (*models.Panel, []*models.PanelMember, error) {
	panel := &models.Panel{}
	err := r.db.QueryRow(ctx, `
		SELECT id, group_id, created_by, created_at FROM panels WHERE group_id = $1`, groupID).
		Scan(&panel.ID, &panel.GroupID, &panel.CreatedBy, &panel.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrResourceNotFound
		}
		return nil, nil, fmt.Errorf("error fetching panel: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, panel_id, supervisor_id FROM panel_members WHERE panel_id = $1 ORDER BY id`,
		panel.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing panel members: %w", err)
	}
	defer rows.Close()

	var members []*models.PanelMember
	for rows.Next() {
		member := &models.PanelMember{}
		if err := rows.Scan(&member.ID, &member.PanelID, &member.SupervisorID); err != nil {
			return nil, nil, fmt.Errorf("error scanning panel member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating panel members: %w", err)
	}

	return panel, members, nil
}

// ListGroupIDsByMember returns the groups a supervisor evaluates as panelist
func (r *PanelRepository) ListGroupIDsByMember(ctx context.Context, supervisorID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.group_id
		FROM panels p
		JOIN panel_members pm ON pm.panel_id = p.id
		WHERE pm.supervisor_id = $1
		ORDER BY p.group_id`, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing panel groups: %w", err)
	}
	defer rows.Close()

	var groupIDs []int64
	for rows.Next() {
		var groupID int64
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("error scanning panel group: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating panel groups: %w", err)
	}

	return groupIDs, nil
}
