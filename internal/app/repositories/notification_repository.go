package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/projecthub/internal/app/models"
)

// NotificationFeedLimit caps how many notifications a feed returns
const NotificationFeedLimit = 10

// INotificationRepository defines the interface for notification database operations
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (int64, error)
	ListForStudent(ctx context.Context, branch string) ([]*models.Notification, error)
	ListForSupervisor(ctx context.Context) ([]*models.Notification, error)
	ListByCreator(ctx context.Context, createdBy int64) ([]*models.Notification, error)
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (int64, error) {
	query, args, err := r.sb.
		Insert("notifications").
		Columns("title", "message", "target_type", "target_branch", "created_by").
		Values(notification.Title, notification.Message, notification.TargetType,
			notification.TargetBranch, notification.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building notification insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// ListForStudent returns the newest notifications visible to a student of the
// given branch
func (r *NotificationRepository) ListForStudent(ctx context.Context, branch string) ([]*models.Notification, error) {
	return r.list(ctx, sq.Or{
		sq.Eq{"target_type": []models.NotificationTarget{models.TargetAll, models.TargetStudents}},
		sq.And{
			sq.Eq{"target_type": models.TargetSpecificBranch},
			sq.Eq{"target_branch": branch},
		},
	})
}

// ListForSupervisor returns the newest notifications visible to supervisors
func (r *NotificationRepository) ListForSupervisor(ctx context.Context) ([]*models.Notification, error) {
	return r.list(ctx, sq.Eq{
		"target_type": []models.NotificationTarget{models.TargetAll, models.TargetSupervisors},
	})
}

// ListByCreator returns the newest notifications a coordinator has published
func (r *NotificationRepository) ListByCreator(ctx context.Context, createdBy int64) ([]*models.Notification, error) {
	return r.list(ctx, sq.Eq{"created_by": createdBy})
}

func (r *NotificationRepository) list(ctx context.Context, pred interface{}) ([]*models.Notification, error) {
	query, args, err := r.sb.
		Select("id", "title", "message", "target_type", "target_branch", "created_by", "created_at").
		From("notifications").
		Where(pred).
		OrderBy("created_at DESC").
		Limit(NotificationFeedLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building notification query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func collectNotifications(rows pgx.Rows) ([]*models.Notification, error) {
	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.TargetType, &n.TargetBranch,
			&n.CreatedBy, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}
