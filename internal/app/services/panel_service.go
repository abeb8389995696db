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

// IPanelService defines the interface for evaluation panel management
type IPanelService interface {
	CreatePanel(ctx context.Context, coordinatorUserID int64, req *dto.CreatePanelRequest) (*models.Panel, error)
	GetPanel(ctx context.Context, groupID int64) (*models.Panel, []*models.PanelMember, error)
}

// PanelService handles evaluation panel assembly
type PanelService struct {
	txRunner              db.TxRunner
	coordinatorRepository repositories.ICoordinatorRepository
	supervisorRepository  repositories.ISupervisorRepository
	studentRepository     repositories.IStudentRepository
	groupRepository       repositories.IGroupRepository
	panelRepository       repositories.IPanelRepository
}

// NewPanelService creates a new PanelService
func NewPanelService(
	txRunner db.TxRunner,
	coordinatorRepository repositories.ICoordinatorRepository,
	supervisorRepository repositories.ISupervisorRepository,
	studentRepository repositories.IStudentRepository,
	groupRepository repositories.IGroupRepository,
	panelRepository repositories.IPanelRepository,
) *PanelService {
	return &PanelService{
		txRunner:              txRunner,
		coordinatorRepository: coordinatorRepository,
		supervisorRepository:  supervisorRepository,
		studentRepository:     studentRepository,
		groupRepository:       groupRepository,
		panelRepository:       panelRepository,
	}
}

// CreatePanel assigns an evaluation panel of exactly PanelSize distinct
// supervisors of the coordinator's school to a group of that school. A group
// gets at most one panel.
func (s *PanelService) CreatePanel(ctx context.Context, coordinatorUserID int64, req *dto.CreatePanelRequest) (*models.Panel, error) {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, coordinatorUserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.groupRepository.GetByID(ctx, req.GroupID); err != nil {
		return nil, err
	}

	members, err := s.studentRepository.ListByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 || members[0].School != coordinator.School {
		return nil, apperrors.ErrPermissionDenied
	}

	if len(req.SupervisorIDs) != models.PanelSize {
		return nil, apperrors.ErrPanelSize
	}
	seen := make(map[int64]bool, models.PanelSize)
	for _, supervisorID := range req.SupervisorIDs {
		if seen[supervisorID] {
			return nil, apperrors.ErrPanelSize
		}
		seen[supervisorID] = true

		supervisor, err := s.supervisorRepository.GetByID(ctx, supervisorID)
		if err != nil {
			return nil, err
		}
		if supervisor.School != coordinator.School {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	exists, err := s.panelRepository.ExistsForGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrPanelExists
	}

	panel := &models.Panel{GroupID: req.GroupID, CreatedBy: coordinator.ID}
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		panel.ID, err = s.panelRepository.CreateTx(ctx, tx, req.GroupID, coordinator.ID, req.SupervisorIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	return panel, nil
}

// GetPanel returns the panel assigned to a group together with its members
func (s *PanelService) GetPanel(ctx context.Context, groupID int64) (*models.Panel, []*models.PanelMember, error) {
	return s.panelRepository.GetByGroup(ctx, groupID)
}
