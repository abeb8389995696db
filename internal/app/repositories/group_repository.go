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

// GroupNameConstraint is the unique constraint backing generated group names.
// Concurrent creation in the same branch retries against it.
const GroupNameConstraint = "student_groups_name_key"

// GroupRoster is one row of the coordinator's group report.
type GroupRoster struct {
	Name           string
	Branch         string
	Year           string
	ProjectTitle   *string
	SupervisorName *string
	MemberNames    []string
	RollNumbers    []string
}

// IGroupRepository defines the interface for group database operations
type IGroupRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, group *models.StudentGroup) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.StudentGroup, error)
	CountByBranch(ctx context.Context, branch string) (int, error)
	CountBySupervisor(ctx context.Context, supervisorID int64) (int, error)
	ListBySupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentGroup, error)
	ListBySchool(ctx context.Context, school string) ([]*models.StudentGroup, error)
	ListBranchesBySchool(ctx context.Context, school string) ([]string, error)
	AssignSupervisorTx(ctx context.Context, tx pgx.Tx, groupID, supervisorID int64) error
	SetSupervisorTx(ctx context.Context, tx pgx.Tx, groupID, supervisorID int64) error
	UpdateProject(ctx context.Context, groupID int64, title, description string) error
	UpdateDocumentLink(ctx context.Context, groupID int64, link string) error
	DeleteTx(ctx context.Context, tx pgx.Tx, groupID int64) error
	GetRosters(ctx context.Context, school, branch string) ([]*GroupRoster, error)
}

// GroupRepository handles group database operations
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = `id, name, supervisor_id, project_title, project_description, document_link, branch, year, created_at`

func scanGroup(row pgx.Row) (*models.StudentGroup, error) {
	g := &models.StudentGroup{}
	err := row.Scan(&g.ID, &g.Name, &g.SupervisorID, &g.ProjectTitle, &g.ProjectDescription,
		&g.DocumentLink, &g.Branch, &g.Year, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// CreateTx inserts a group inside the given transaction. The generated name
// is protected by a unique constraint; callers retry with the next sequence
// number when the constraint fires.
func (r *GroupRepository) CreateTx(ctx context.Context, tx pgx.Tx, group *models.StudentGroup) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO student_groups (name, branch, year)
		VALUES ($1, $2, $3)
		RETURNING id`,
		group.Name, group.Branch, group.Year).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, GroupNameConstraint) {
			return 0, fmt.Errorf("group name %q taken: %w", group.Name, err)
		}
		return 0, fmt.Errorf("error creating group: %w", err)
	}

	return id, nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.StudentGroup, error) {
	group, err := scanGroup(r.db.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM student_groups WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error fetching group by id: %w", err)
	}

	return group, nil
}

// CountByBranch returns the number of groups created in a branch, used to
// derive the next generated group name.
func (r *GroupRepository) CountByBranch(ctx context.Context, branch string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM student_groups WHERE branch = $1`,
		branch).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting groups by branch: %w", err)
	}

	return count, nil
}

// CountBySupervisor returns how many groups a supervisor currently holds
func (r *GroupRepository) CountBySupervisor(ctx context.Context, supervisorID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM student_groups WHERE supervisor_id = $1`,
		supervisorID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting supervised groups: %w", err)
	}

	return count, nil
}

// ListBySupervisor returns the groups a supervisor currently holds
func (r *GroupRepository) ListBySupervisor(ctx context.Context, supervisorID int64) ([]*models.StudentGroup, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+groupColumns+` FROM student_groups WHERE supervisor_id = $1 ORDER BY name`, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing supervised groups: %w", err)
	}
	defer rows.Close()

	return collectGroups(rows)
}

// ListBySchool returns every group whose members belong to the given school
func (r *GroupRepository) ListBySchool(ctx context.Context, school string) ([]*models.StudentGroup, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT g.id, g.name, g.supervisor_id, g.project_title, g.project_description,
		       g.document_link, g.branch, g.year, g.created_at
		FROM student_groups g
		JOIN students s ON s.group_id = g.id
		WHERE s.school = $1
		ORDER BY g.name`, school)
	if err != nil {
		return nil, fmt.Errorf("error listing school groups: %w", err)
	}
	defer rows.Close()

	return collectGroups(rows)
}

// ListBranchesBySchool returns the distinct branches with groups in a school
func (r *GroupRepository) ListBranchesBySchool(ctx context.Context, school string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT g.branch
		FROM student_groups g
		JOIN students s ON s.group_id = g.id
		WHERE s.school = $1
		ORDER BY g.branch`, school)
	if err != nil {
		return nil, fmt.Errorf("error listing branches: %w", err)
	}
	defer rows.Close()

	var branches []string
	for rows.Next() {
		var branch string
		if err := rows.Scan(&branch); err != nil {
			return nil, fmt.Errorf("error scanning branch: %w", err)
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branches: %w", err)
	}

	return branches, nil
}

// AssignSupervisorTx sets the group's supervisor only if it has none yet.
// The conditional update closes the race between two concurrent accepts.
func (r *GroupRepository) AssignSupervisorTx(ctx context.Context, tx pgx.Tx, groupID, supervisorID int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE student_groups
		SET supervisor_id = $1
		WHERE id = $2 AND supervisor_id IS NULL`,
		supervisorID, groupID)

	if err != nil {
		return fmt.Errorf("error assigning supervisor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupHasSupervisor
	}

	return nil
}

// SetSupervisorTx reassigns the group's supervisor unconditionally; used by
// the coordinator-approved change flow where a supervisor is already set.
func (r *GroupRepository) SetSupervisorTx(ctx context.Context, tx pgx.Tx, groupID, supervisorID int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE student_groups SET supervisor_id = $1 WHERE id = $2`,
		supervisorID, groupID)

	if err != nil {
		return fmt.Errorf("error reassigning supervisor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// UpdateProject updates the project title and description
func (r *GroupRepository) UpdateProject(ctx context.Context, groupID int64, title, description string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE student_groups SET project_title = $1, project_description = $2 WHERE id = $3`,
		title, description, groupID)

	if err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// UpdateDocumentLink updates the shared document link
func (r *GroupRepository) UpdateDocumentLink(ctx context.Context, groupID int64, link string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE student_groups SET document_link = $1 WHERE id = $2`,
		link, groupID)

	if err != nil {
		return fmt.Errorf("error updating document link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// DeleteTx removes a group inside the given transaction. Dependent request
// rows are deleted explicitly by the caller in the same transaction.
func (r *GroupRepository) DeleteTx(ctx context.Context, tx pgx.Tx, groupID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM student_groups WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}

	return nil
}

// GetRosters projects the group report for a school, optionally filtered by
// branch. Member names and roll numbers are aggregated in member order.
func (r *GroupRepository) GetRosters(ctx context.Context, school, branch string) ([]*GroupRoster, error) {
	query := `
		SELECT g.name, g.branch, g.year, g.project_title, sup.name,
		       ARRAY_AGG(s.name ORDER BY s.id), ARRAY_AGG(s.roll_number ORDER BY s.id)
		FROM student_groups g
		JOIN students s ON s.group_id = g.id
		LEFT JOIN supervisors sup ON sup.id = g.supervisor_id
		WHERE s.school = $1`
	args := []interface{}{school}

	if branch != "" {
		query += ` AND g.branch = $2`
		args = append(args, branch)
	}
	query += `
		GROUP BY g.id, g.name, g.branch, g.year, g.project_title, sup.name
		ORDER BY g.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying group rosters: %w", err)
	}
	defer rows.Close()

	var rosters []*GroupRoster
	for rows.Next() {
		roster := &GroupRoster{}
		err := rows.Scan(&roster.Name, &roster.Branch, &roster.Year, &roster.ProjectTitle,
			&roster.SupervisorName, &roster.MemberNames, &roster.RollNumbers)
		if err != nil {
			return nil, fmt.Errorf("error scanning group roster: %w", err)
		}
		rosters = append(rosters, roster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rosters: %w", err)
	}

	return rosters, nil
}

func collectGroups(rows pgx.Rows) ([]*models.StudentGroup, error) {
	var groups []*models.StudentGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}
