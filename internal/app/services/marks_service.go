package services

import (
	"context"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// IMarksService defines the interface for mark assignment
type IMarksService interface {
	AssignMarks(ctx context.Context, supervisorUserID int64, req *dto.AssignMarksRequest) (*models.Marks, error)
	GetStudentMarks(ctx context.Context, studentUserID int64) ([]*models.Marks, error)
}

// MarksService handles mark sheets written by group supervisors
type MarksService struct {
	supervisorRepository repositories.ISupervisorRepository
	studentRepository    repositories.IStudentRepository
	groupRepository      repositories.IGroupRepository
	marksRepository      repositories.IMarksRepository
}

// NewMarksService creates a new MarksService
func NewMarksService(
	supervisorRepository repositories.ISupervisorRepository,
	studentRepository repositories.IStudentRepository,
	groupRepository repositories.IGroupRepository,
	marksRepository repositories.IMarksRepository,
) *MarksService {
	return &MarksService{
		supervisorRepository: supervisorRepository,
		studentRepository:    studentRepository,
		groupRepository:      groupRepository,
		marksRepository:      marksRepository,
	}
}

// AssignMarks writes component scores for a student. Only the supervisor
// currently assigned to the student's group may submit. Resubmitting
// replaces the evaluator's earlier sheet for the same student.
func (s *MarksService) AssignMarks(ctx context.Context, supervisorUserID int64, req *dto.AssignMarksRequest) (*models.Marks, error) {
	supervisor, err := s.supervisorRepository.GetByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepository.GetByID(ctx, req.StudentID)
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
	if group.SupervisorID == nil || *group.SupervisorID != supervisor.ID {
		return nil, apperrors.ErrNotGroupSupervisor
	}

	marks := &models.Marks{
		StudentID:     student.ID,
		Presentation:  req.Presentation,
		Documents:     req.Documents,
		Collaboration: req.Collaboration,
		Total:         req.Presentation + req.Documents + req.Collaboration,
		GivenBy:       supervisor.ID,
	}
	if err := s.marksRepository.Upsert(ctx, marks); err != nil {
		return nil, err
	}

	return marks, nil
}

// GetStudentMarks returns every mark sheet the calling student has received
func (s *MarksService) GetStudentMarks(ctx context.Context, studentUserID int64) ([]*models.Marks, error) {
	student, err := s.studentRepository.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	return s.marksRepository.ListByStudent(ctx, student.ID)
}
