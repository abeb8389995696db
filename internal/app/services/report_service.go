package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/arjun/projecthub/internal/app/repositories"
)

// Placeholders for fields a group has not filled in yet.
const (
	placeholderNoSupervisor = "Not assigned"
	placeholderNoTitle      = "Not set"
)

// IReportService defines the interface for coordinator exports
type IReportService interface {
	GroupReportCSV(ctx context.Context, coordinatorUserID int64, branch string) (string, []byte, error)
}

// ReportService renders coordinator CSV exports
type ReportService struct {
	coordinatorRepository repositories.ICoordinatorRepository
	groupRepository       repositories.IGroupRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	coordinatorRepository repositories.ICoordinatorRepository,
	groupRepository repositories.IGroupRepository,
) *ReportService {
	return &ReportService{
		coordinatorRepository: coordinatorRepository,
		groupRepository:       groupRepository,
	}
}

// GroupReportCSV renders the group roster of the coordinator's school as CSV,
// optionally restricted to one branch. Returns the suggested filename and
// the file body.
func (s *ReportService) GroupReportCSV(ctx context.Context, coordinatorUserID int64, branch string) (string, []byte, error) {
	coordinator, err := s.coordinatorRepository.GetByUserID(ctx, coordinatorUserID)
	if err != nil {
		return "", nil, err
	}

	rosters, err := s.groupRepository.GetRosters(ctx, coordinator.School, branch)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Group Name", "Branch", "Year", "Project Title", "Supervisor", "Member Names", "Roll Numbers"}
	if err := w.Write(header); err != nil {
		return "", nil, fmt.Errorf("error writing report header: %w", err)
	}

	for _, roster := range rosters {
		title := placeholderNoTitle
		if roster.ProjectTitle != nil && *roster.ProjectTitle != "" {
			title = *roster.ProjectTitle
		}
		supervisor := placeholderNoSupervisor
		if roster.SupervisorName != nil {
			supervisor = *roster.SupervisorName
		}

		record := []string{
			roster.Name,
			roster.Branch,
			roster.Year,
			title,
			supervisor,
			strings.Join(roster.MemberNames, ", "),
			strings.Join(roster.RollNumbers, ", "),
		}
		if err := w.Write(record); err != nil {
			return "", nil, fmt.Errorf("error writing report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("error flushing report: %w", err)
	}

	return reportFilename(coordinator.School, branch), buf.Bytes(), nil
}

func reportFilename(school, branch string) string {
	name := "group_details_" + sanitizeFilePart(school)
	if branch != "" {
		name += "_" + sanitizeFilePart(branch)
	}
	return name + ".csv"
}

func sanitizeFilePart(part string) string {
	return strings.ReplaceAll(strings.TrimSpace(part), " ", "_")
}
