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

// IInviteRepository defines the interface for group invite database operations
type IInviteRepository interface {
	Create(ctx context.Context, invite *models.GroupInvite) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.GroupInvite, error)
	HasPending(ctx context.Context, senderID, receiverID int64) (bool, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error
	ListPendingByReceiver(ctx context.Context, receiverID int64) ([]*models.GroupInvite, error)
}

// InviteRepository handles group invite database operations
type InviteRepository struct {
	db *pgxpool.Pool
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create inserts a pending invite
func (r *InviteRepository) Create(ctx context.Context, invite *models.GroupInvite) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO group_invites (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		invite.SenderID, invite.ReceiverID, models.StatusPending).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating invite: %w", err)
	}

	return id, nil
}

// GetByID retrieves an invite by ID
func (r *InviteRepository) GetByID(ctx context.Context, id int64) (*models.GroupInvite, error) {
	invite := &models.GroupInvite{}
	err := r.db.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, status, sent_at
		FROM group_invites WHERE id = $1`, id).
		Scan(&invite.ID, &invite.SenderID, &invite.ReceiverID, &invite.Status, &invite.SentAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, fmt.Errorf("error fetching invite: %w", err)
	}

	return invite, nil
}

// HasPending reports whether a pending invite already exists between the pair
func (r *InviteRepository) HasPending(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM group_invites
			WHERE sender_id = $1 AND receiver_id = $2 AND status = $3
		)`,
		senderID, receiverID, models.StatusPending).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking pending invite: %w", err)
	}

	return exists, nil
}

// UpdateStatusTx transitions an invite out of pending inside a transaction.
// Only pending invites can move; a second responder sees not found.
func (r *InviteRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.RequestStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE group_invites SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, models.StatusPending)

	if err != nil {
		return fmt.Errorf("error updating invite status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInviteNotFound
	}

	return nil
}

// ListPendingByReceiver returns pending invites addressed to a student
func (r *InviteRepository) ListPendingByReceiver(ctx context.Context, receiverID int64) ([]*models.GroupInvite, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, receiver_id, status, sent_at
		FROM group_invites
		WHERE receiver_id = $1 AND status = $2
		ORDER BY sent_at DESC`,
		receiverID, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.GroupInvite
	for rows.Next() {
		invite := &models.GroupInvite{}
		err := rows.Scan(&invite.ID, &invite.SenderID, &invite.ReceiverID, &invite.Status, &invite.SentAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invites: %w", err)
	}

	return invites, nil
}
