package services

import (
	"context"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// INotificationService defines the interface for coordinator broadcasts
type INotificationService interface {
	Send(ctx context.Context, coordinatorUserID int64, req *dto.SendNotificationRequest) (*models.Notification, error)
	FeedForStudent(ctx context.Context, studentUserID int64) ([]*models.Notification, error)
	FeedForSupervisor(ctx context.Context) ([]*models.Notification, error)
	FeedForCoordinator(ctx context.Context, coordinatorUserID int64) ([]*models.Notification, error)
}

// NotificationService handles broadcast notifications
type NotificationService struct {
	studentRepository      repositories.IStudentRepository
	coordinatorRepository  repositories.ICoordinatorRepository
	notificationRepository repositories.INotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	studentRepository repositories.IStudentRepository,
	coordinatorRepository repositories.ICoordinatorRepository,
	notificationRepository repositories.INotificationRepository,
) *NotificationService {
	return &NotificationService{
		studentRepository:      studentRepository,
		coordinatorRepository:  coordinatorRepository,
		notificationRepository: notificationRepository,
	}
}

// Send publishes a notification to the selected audience. A branch-targeted
// notification must name the branch.
func (s *NotificationService) Send(ctx context.Context, coordinatorUserID int64, req *dto.SendNotificationRequest) (*models.Notification, error) {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, coordinatorUserID)
	if err != nil {
		return nil, err
	}

	target := models.NotificationTarget(req.TargetType)
	var targetBranch *string
	if target == models.TargetSpecificBranch {
		if req.TargetBranch == "" {
			return nil, apperrors.ErrValidationFailed
		}
		targetBranch = &req.TargetBranch
	}

	notification := &models.Notification{
		Title:        req.Title,
		Message:      req.Message,
		TargetType:   target,
		TargetBranch: targetBranch,
		CreatedBy:    coordinator.ID,
	}
	notification.ID, err = s.notificationRepository.Create(ctx, notification)
	if err != nil {
		return nil, err
	}

	return notification, nil
}

// FeedForStudent returns the newest notifications the calling student sees,
// including broadcasts targeted at their branch
func (s *NotificationService) FeedForStudent(ctx context.Context, studentUserID int64) ([]*models.Notification, error) {
	student, err := s.studentRepository.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	return s.notificationRepository.ListForStudent(ctx, student.Branch)
}

// FeedForSupervisor returns the newest notifications supervisors see
func (s *NotificationService) FeedForSupervisor(ctx context.Context) ([]*models.Notification, error) {
	return s.notificationRepository.ListForSupervisor(ctx)
}

// FeedForCoordinator returns the caller's own recent broadcasts
func (s *NotificationService) FeedForCoordinator(ctx context.Context, coordinatorUserID int64) ([]*models.Notification, error) {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, coordinatorUserID)
	if err != nil {
		return nil, err
	}

	return s.notificationRepository.ListByCreator(ctx, coordinator.ID)
}
