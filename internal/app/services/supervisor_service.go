package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// ISupervisorService defines the interface for supervision assignment flows
type ISupervisorService interface {
	RequestSupervisor(ctx context.Context, studentUserID int64, req *dto.RequestSupervisorRequest) (*models.SupervisorRequest, error)
	RespondRequest(ctx context.Context, supervisorUserID int64, req *dto.RespondSupervisorRequest) error
	RequestChange(ctx context.Context, studentUserID int64, req *dto.SupervisorChangeRequestRequest) (*models.SupervisorChangeRequest, error)
	ResolveChange(ctx context.Context, coordinatorUserID int64, req *dto.RespondChangeRequest) error
}

// SupervisorService handles supervision requests and supervisor changes
type SupervisorService struct {
	txRunner                db.TxRunner
	studentRepository       repositories.IStudentRepository
	supervisorRepository    repositories.ISupervisorRepository
	coordinatorRepository   repositories.ICoordinatorRepository
	groupRepository         repositories.IGroupRepository
	requestRepository       repositories.ISupervisorRequestRepository
	changeRequestRepository repositories.IChangeRequestRepository
}

// NewSupervisorService creates a new SupervisorService
func NewSupervisorService(
	txRunner db.TxRunner,
	studentRepository repositories.IStudentRepository,
	supervisorRepository repositories.ISupervisorRepository,
	coordinatorRepository repositories.ICoordinatorRepository,
	groupRepository repositories.IGroupRepository,
	requestRepository repositories.ISupervisorRequestRepository,
	changeRequestRepository repositories.IChangeRequestRepository,
) *SupervisorService {
	return &SupervisorService{
		txRunner:                txRunner,
		studentRepository:       studentRepository,
		supervisorRepository:    supervisorRepository,
		coordinatorRepository:   coordinatorRepository,
		groupRepository:         groupRepository,
		requestRepository:       requestRepository,
		changeRequestRepository: changeRequestRepository,
	}
}

// RequestSupervisor asks a supervisor of the caller's school to take the
// caller's group. The group must be unsupervised, hold fewer than
// MaxSupervisorRequests pending requests, and must not already have asked
// the same supervisor.
func (s *SupervisorService) RequestSupervisor(ctx context.Context, studentUserID int64, req *dto.RequestSupervisorRequest) (*models.SupervisorRequest, error) {
	student, err := s.studentRepository.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if student.GroupID == nil {
		return nil, apperrors.ErrNotInGroup
	}

	group, err := s.groupRepository.GetByID(ctx, *student.GroupID)
	if err != nil {
		return nil, err
	}
	if group.SupervisorID != nil {
		return nil, apperrors.ErrGroupHasSupervisor
	}

	supervisor, err := s.supervisorRepository.GetByID(ctx, req.SupervisorID)
	if err != nil {
		return nil, err
	}
	if supervisor.School != student.School {
		return nil, apperrors.ErrSchoolMismatch
	}

	pendingCount, err := s.requestRepository.CountPendingByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if pendingCount >= models.MaxSupervisorRequests {
		return nil, apperrors.ErrRequestLimitReached
	}

	exists, err := s.requestRepository.ExistsPending(ctx, group.ID, supervisor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrRequestAlreadySent
	}

	request := &models.SupervisorRequest{
		GroupID:      group.ID,
		SupervisorID: supervisor.ID,
		Status:       models.StatusPending,
	}
	request.ID, err = s.requestRepository.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	return request, nil
}

// RespondRequest lets a supervisor accept or reject a pending request.
// Acceptance assigns the group, rejects its remaining pending requests, and
// is guarded against a concurrent accept by the conditional assignment.
func (s *SupervisorService) RespondRequest(ctx context.Context, supervisorUserID int64, req *dto.RespondSupervisorRequest) error {
	supervisor, err := s.supervisorRepository.GetByUserID(ctx, supervisorUserID)
	if err != nil {
		return err
	}

	request, err := s.requestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.SupervisorID != supervisor.ID {
		return apperrors.ErrPermissionDenied
	}
	if request.Status != models.StatusPending {
		return apperrors.ErrRequestNotFound
	}

	if req.Action == "reject" {
		return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return s.requestRepository.UpdateStatusTx(ctx, tx, request.ID, models.StatusRejected)
		})
	}

	held, err := s.groupRepository.CountBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return err
	}
	if held >= models.MaxSupervisedGroups {
		return apperrors.ErrSupervisorAtCapacity
	}

	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.groupRepository.AssignSupervisorTx(ctx, tx, request.GroupID, supervisor.ID); err != nil {
			return err
		}
		if err := s.requestRepository.UpdateStatusTx(ctx, tx, request.ID, models.StatusAccepted); err != nil {
			return err
		}
		return s.requestRepository.RejectOtherPendingTx(ctx, tx, request.GroupID, request.ID)
	})
}

// RequestChange opens a change-of-supervisor request for the caller's group.
// Only one change request may be pending per group at a time.
func (s *SupervisorService) RequestChange(ctx context.Context, studentUserID int64, req *dto.SupervisorChangeRequestRequest) (*models.SupervisorChangeRequest, error) {
	student, err := s.studentRepository.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if student.GroupID == nil {
		return nil, apperrors.ErrNotInGroup
	}

	group, err := s.groupRepository.GetByID(ctx, *student.GroupID)
	if err != nil {
		return nil, err
	}
	if group.SupervisorID == nil {
		return nil, apperrors.ErrGroupHasNoSupervisor
	}
	if *group.SupervisorID == req.NewSupervisorID {
		return nil, apperrors.ErrSameSupervisor
	}

	requested, err := s.supervisorRepository.GetByID(ctx, req.NewSupervisorID)
	if err != nil {
		return nil, err
	}
	if requested.School != student.School {
		return nil, apperrors.ErrSchoolMismatch
	}

	pending, err := s.changeRequestRepository.HasPending(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ErrChangeRequestPending
	}

	request := &models.SupervisorChangeRequest{
		GroupID:             group.ID,
		CurrentSupervisorID: *group.SupervisorID,
		NewSupervisorID:     requested.ID,
		Reason:              req.Reason,
		Status:              models.StatusPending,
	}
	request.ID, err = s.changeRequestRepository.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ResolveChange lets a coordinator approve or reject a pending change
// request for a group of their school. Approval re-checks the requested
// supervisor's capacity, reassigns the group and rejects any supervision
// requests still pending for it.
func (s *SupervisorService) ResolveChange(ctx context.Context, coordinatorUserID int64, req *dto.RespondChangeRequest) error {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, coordinatorUserID)
	if err != nil {
		return err
	}

	request, err := s.changeRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.Status != models.StatusPending {
		return apperrors.ErrChangeRequestNotFound
	}

	school, err := s.groupSchool(ctx, request.GroupID)
	if err != nil {
		return err
	}
	if school != coordinator.School {
		return apperrors.ErrPermissionDenied
	}

	if req.Action == "reject" {
		return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return s.changeRequestRepository.ResolveTx(ctx, tx, request.ID, models.StatusRejected)
		})
	}

	held, err := s.groupRepository.CountBySupervisor(ctx, request.NewSupervisorID)
	if err != nil {
		return err
	}
	if held >= models.MaxSupervisedGroups {
		return apperrors.ErrSupervisorAtCapacity
	}

	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.groupRepository.SetSupervisorTx(ctx, tx, request.GroupID, request.NewSupervisorID); err != nil {
			return err
		}
		if err := s.requestRepository.RejectOtherPendingTx(ctx, tx, request.GroupID, 0); err != nil {
			return err
		}
		return s.changeRequestRepository.ResolveTx(ctx, tx, request.ID, models.StatusApproved)
	})
}

// groupSchool derives a group's school from its members
func (s *SupervisorService) groupSchool(ctx context.Context, groupID int64) (string, error) {
	members, err := s.studentRepository.ListByGroup(ctx, groupID)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", apperrors.ErrGroupNotFound
	}
	return members[0].School, nil
}
