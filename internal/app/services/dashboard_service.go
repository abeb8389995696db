package services

import (
	"context"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
)

// IDashboardService defines the interface for role landing pages
type IDashboardService interface {
	StudentDashboard(ctx context.Context, userID int64) (*dto.StudentDashboard, error)
	SupervisorDashboard(ctx context.Context, userID int64) (*dto.SupervisorDashboard, error)
	CoordinatorDashboard(ctx context.Context, userID int64) (*dto.CoordinatorDashboard, error)
}

// DashboardService aggregates the per-role landing pages
type DashboardService struct {
	studentRepository       repositories.IStudentRepository
	supervisorRepository    repositories.ISupervisorRepository
	coordinatorRepository   repositories.ICoordinatorRepository
	groupRepository         repositories.IGroupRepository
	inviteRepository        repositories.IInviteRepository
	requestRepository       repositories.ISupervisorRequestRepository
	changeRequestRepository repositories.IChangeRequestRepository
	notificationRepository  repositories.INotificationRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	studentRepository repositories.IStudentRepository,
	supervisorRepository repositories.ISupervisorRepository,
	coordinatorRepository repositories.ICoordinatorRepository,
	groupRepository repositories.IGroupRepository,
	inviteRepository repositories.IInviteRepository,
	requestRepository repositories.ISupervisorRequestRepository,
	changeRequestRepository repositories.IChangeRequestRepository,
	notificationRepository repositories.INotificationRepository,
) *DashboardService {
	return &DashboardService{
		studentRepository:       studentRepository,
		supervisorRepository:    supervisorRepository,
		coordinatorRepository:   coordinatorRepository,
		groupRepository:         groupRepository,
		inviteRepository:        inviteRepository,
		requestRepository:       requestRepository,
		changeRequestRepository: changeRequestRepository,
		notificationRepository:  notificationRepository,
	}
}

// StudentDashboard collects everything the student landing page shows:
// the group (if any), pending invites, invitable classmates, the school's
// supervisors and the notification feed.
func (s *DashboardService) StudentDashboard(ctx context.Context, userID int64) (*dto.StudentDashboard, error) {
	student, err := s.studentRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.StudentDashboard{Student: student}

	if student.GroupID != nil {
		dashboard.Group, err = s.groupRepository.GetByID(ctx, *student.GroupID)
		if err != nil {
			return nil, err
		}
		dashboard.GroupMembers, err = s.studentRepository.ListByGroup(ctx, *student.GroupID)
		if err != nil {
			return nil, err
		}
		dashboard.ChangeRequests, err = s.changeRequestRepository.ListByGroup(ctx, *student.GroupID)
		if err != nil {
			return nil, err
		}
	}

	dashboard.PendingInvites, err = s.inviteRepository.ListPendingByReceiver(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	dashboard.AvailableStudents, err = s.studentRepository.ListAvailable(ctx, student.Year, student.Branch, student.ID)
	if err != nil {
		return nil, err
	}

	dashboard.Supervisors, err = s.supervisorRepository.ListBySchool(ctx, student.School)
	if err != nil {
		return nil, err
	}

	dashboard.Notifications, err = s.notificationRepository.ListForStudent(ctx, student.Branch)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// SupervisorDashboard collects the supervisor landing page: supervised
// groups, pending supervision requests, change requests naming the
// supervisor and the notification feed.
func (s *DashboardService) SupervisorDashboard(ctx context.Context, userID int64) (*dto.SupervisorDashboard, error) {
	supervisor, err := s.supervisorRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.SupervisorDashboard{Supervisor: supervisor}

	dashboard.Groups, err = s.groupRepository.ListBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	dashboard.PendingRequests, err = s.requestRepository.ListPendingBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	dashboard.ChangeRequests, err = s.changeRequestRepository.ListPendingByCurrentSupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	dashboard.Notifications, err = s.notificationRepository.ListForSupervisor(ctx)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}

// CoordinatorDashboard collects the coordinator landing page: the school's
// groups, supervisors, pending change requests, branches and the
// coordinator's own broadcasts.
func (s *DashboardService) CoordinatorDashboard(ctx context.Context, userID int64) (*dto.CoordinatorDashboard, error) {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.CoordinatorDashboard{Coordinator: coordinator}

	dashboard.Groups, err = s.groupRepository.ListBySchool(ctx, coordinator.School)
	if err != nil {
		return nil, err
	}

	dashboard.Supervisors, err = s.supervisorRepository.ListBySchool(ctx, coordinator.School)
	if err != nil {
		return nil, err
	}

	dashboard.ChangeRequests, err = s.changeRequestRepository.ListPendingBySchool(ctx, coordinator.School)
	if err != nil {
		return nil, err
	}

	dashboard.Notifications, err = s.notificationRepository.ListByCreator(ctx, coordinator.ID)
	if err != nil {
		return nil, err
	}

	dashboard.Branches, err = s.groupRepository.ListBranchesBySchool(ctx, coordinator.School)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}
