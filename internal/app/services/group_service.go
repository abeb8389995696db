package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/dberrors"
	"github.com/arjun/projecthub/internal/pkg/logger"
)

// groupNameAttempts bounds retries when concurrent creations race for the
// same generated name.
const groupNameAttempts = 5

// IGroupService defines the interface for group formation and project metadata
type IGroupService interface {
	SendInvite(ctx context.Context, senderUserID int64, req *dto.SendInviteRequest) (*models.GroupInvite, error)
	RespondInvite(ctx context.Context, receiverUserID int64, req *dto.RespondInviteRequest) error
	LeaveGroup(ctx context.Context, userID int64) error
	GetMyGroup(ctx context.Context, userID int64) (*dto.GroupDetail, error)
	UpdateProject(ctx context.Context, userID int64, req *dto.UpdateProjectRequest) error
	UpdateDocumentLink(ctx context.Context, userID int64, req *dto.UpdateDocumentLinkRequest) error
}

// GroupService handles invitations, membership and project metadata
type GroupService struct {
	txRunner                db.TxRunner
	studentRepository       repositories.IStudentRepository
	groupRepository         repositories.IGroupRepository
	inviteRepository        repositories.IInviteRepository
	requestRepository       repositories.ISupervisorRequestRepository
	changeRequestRepository repositories.IChangeRequestRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(
	txRunner db.TxRunner,
	studentRepository repositories.IStudentRepository,
	groupRepository repositories.IGroupRepository,
	inviteRepository repositories.IInviteRepository,
	requestRepository repositories.ISupervisorRequestRepository,
	changeRequestRepository repositories.IChangeRequestRepository,
) *GroupService {
	return &GroupService{
		txRunner:                txRunner,
		studentRepository:       studentRepository,
		groupRepository:         groupRepository,
		inviteRepository:        inviteRepository,
		requestRepository:       requestRepository,
		changeRequestRepository: changeRequestRepository,
	}
}

// SendInvite invites another student. Both students must share year and
// branch, the receiver must be ungrouped, and the sender's group (if any)
// must still have room.
func (s *GroupService) SendInvite(ctx context.Context, senderUserID int64, req *dto.SendInviteRequest) (*models.GroupInvite, error) {
	sender, err := s.studentRepository.GetByUserID(ctx, senderUserID)
	if err != nil {
		return nil, err
	}

	if req.ReceiverID == sender.ID {
		return nil, apperrors.ErrBadRequest
	}

	receiver, err := s.studentRepository.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	if receiver.Year != sender.Year || receiver.Branch != sender.Branch {
		return nil, apperrors.ErrStudentUnavailable
	}
	if receiver.GroupID != nil {
		return nil, apperrors.ErrStudentUnavailable
	}

	if sender.GroupID != nil {
		size, err := s.studentRepository.CountByGroup(ctx, *sender.GroupID)
		if err != nil {
			return nil, err
		}
		if size >= models.MaxGroupSize {
			return nil, apperrors.ErrGroupFull
		}
	}

	pending, err := s.inviteRepository.HasPending(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ErrInviteAlreadySent
	}

	invite := &models.GroupInvite{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     models.StatusPending,
	}
	invite.ID, err = s.inviteRepository.Create(ctx, invite)
	if err != nil {
		return nil, err
	}

	return invite, nil
}

// RespondInvite accepts or rejects a pending invite addressed to the caller.
// Accepting joins the sender's group, or creates one holding both students
// when the sender is still ungrouped. Eligibility is re-checked at accept
// time since conditions may have drifted since the invite was sent.
func (s *GroupService) RespondInvite(ctx context.Context, receiverUserID int64, req *dto.RespondInviteRequest) error {
	receiver, err := s.studentRepository.GetByUserID(ctx, receiverUserID)
	if err != nil {
		return err
	}

	invite, err := s.inviteRepository.GetByID(ctx, req.InviteID)
	if err != nil {
		return err
	}
	if invite.ReceiverID != receiver.ID {
		return apperrors.ErrPermissionDenied
	}
	if invite.Status != models.StatusPending {
		return apperrors.ErrInviteNotFound
	}

	if req.Action == "reject" {
		return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return s.inviteRepository.UpdateStatusTx(ctx, tx, invite.ID, models.StatusRejected)
		})
	}

	if receiver.GroupID != nil {
		return apperrors.ErrStudentUnavailable
	}

	sender, err := s.studentRepository.GetByID(ctx, invite.SenderID)
	if err != nil {
		return err
	}

	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if sender.GroupID != nil {
			size, err := s.studentRepository.CountByGroup(ctx, *sender.GroupID)
			if err != nil {
				return err
			}
			if size >= models.MaxGroupSize {
				return apperrors.ErrGroupFull
			}
			if err := s.studentRepository.SetGroupTx(ctx, tx, receiver.ID, sender.GroupID); err != nil {
				return err
			}
		} else {
			groupID, err := s.createGroupTx(ctx, tx, sender.Branch, sender.Year)
			if err != nil {
				return err
			}
			if err := s.studentRepository.SetGroupTx(ctx, tx, sender.ID, &groupID); err != nil {
				return err
			}
			if err := s.studentRepository.SetGroupTx(ctx, tx, receiver.ID, &groupID); err != nil {
				return err
			}
		}

		return s.inviteRepository.UpdateStatusTx(ctx, tx, invite.ID, models.StatusAccepted)
	})
}

// createGroupTx inserts a group named <branch><sequence>, bumping the
// sequence and retrying when a concurrent creation claims the same name.
func (s *GroupService) createGroupTx(ctx context.Context, tx pgx.Tx, branch, year string) (int64, error) {
	count, err := s.groupRepository.CountByBranch(ctx, branch)
	if err != nil {
		return 0, err
	}

	var lastErr error
	for attempt := 0; attempt < groupNameAttempts; attempt++ {
		name := fmt.Sprintf("%s%02d", branch, count+1+attempt)
		groupID, err := s.groupRepository.CreateTx(ctx, tx, &models.StudentGroup{
			Name:   name,
			Branch: branch,
			Year:   year,
		})
		if err == nil {
			return groupID, nil
		}
		if !dberrors.IsDuplicateConstraintError(err, repositories.GroupNameConstraint) {
			return 0, err
		}
		logger.Debug().Str("name", name).Msg("Group name taken, retrying with next sequence")
		lastErr = err
	}

	return 0, lastErr
}

// LeaveGroup removes the caller from their group. When the last member
// leaves, the group and its outstanding requests are removed with it.
func (s *GroupService) LeaveGroup(ctx context.Context, userID int64) error {
	student, err := s.studentRepository.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if student.GroupID == nil {
		return apperrors.ErrNotInGroup
	}
	groupID := *student.GroupID

	size, err := s.studentRepository.CountByGroup(ctx, groupID)
	if err != nil {
		return err
	}

	return s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepository.SetGroupTx(ctx, tx, student.ID, nil); err != nil {
			return err
		}

		if size > 1 {
			return nil
		}

		if err := s.requestRepository.DeleteByGroupTx(ctx, tx, groupID); err != nil {
			return err
		}
		if err := s.changeRequestRepository.DeleteByGroupTx(ctx, tx, groupID); err != nil {
			return err
		}
		return s.groupRepository.DeleteTx(ctx, tx, groupID)
	})
}

// GetMyGroup returns the caller's group with its member roster
func (s *GroupService) GetMyGroup(ctx context.Context, userID int64) (*dto.GroupDetail, error) {
	student, err := s.studentRepository.GetByUserID(ctx, userID)
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

	members, err := s.studentRepository.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return &dto.GroupDetail{Group: group, Members: members}, nil
}

// UpdateProject sets the project title and description of the caller's group
func (s *GroupService) UpdateProject(ctx context.Context, userID int64, req *dto.UpdateProjectRequest) error {
	student, err := s.studentRepository.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if student.GroupID == nil {
		return apperrors.ErrNotInGroup
	}

	return s.groupRepository.UpdateProject(ctx, *student.GroupID, req.Title, req.Description)
}

// UpdateDocumentLink sets the shared document link of the caller's group
func (s *GroupService) UpdateDocumentLink(ctx context.Context, userID int64, req *dto.UpdateDocumentLinkRequest) error {
	student, err := s.studentRepository.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if student.GroupID == nil {
		return apperrors.ErrNotInGroup
	}

	return s.groupRepository.UpdateDocumentLink(ctx, *student.GroupID, req.Link)
}
