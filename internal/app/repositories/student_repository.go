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

// IStudentRepository defines the interface for student profile operations
type IStudentRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*models.Student, error)
	ListAvailable(ctx context.Context, year, branch string, excludeID int64) ([]*models.Student, error)
	SetGroupTx(ctx context.Context, tx pgx.Tx, studentID int64, groupID *int64) error
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, user_id, name, roll_number, year, school, branch, group_id`

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.RollNumber, &s.Year, &s.School, &s.Branch, &s.GroupID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateTx inserts a student profile inside the given transaction.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO students (user_id, name, roll_number, year, school, branch)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		student.UserID, student.Name, student.RollNumber, student.Year, student.School, student.Branch).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			return 0, apperrors.ErrRollNumberExists
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByUserID retrieves a student profile by account ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error fetching student by user id: %w", err)
	}

	return student, nil
}

// GetByID retrieves a student profile by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error fetching student by id: %w", err)
	}

	return student, nil
}

// RollNumberExists checks if a roll number is already registered
func (r *StudentRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE roll_number = $1)`,
		rollNumber).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking roll number: %w", err)
	}

	return exists, nil
}

// CountByGroup returns the live member count of a group. Capacity checks
// always re-read this instead of trusting a cached value.
func (r *StudentRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students WHERE group_id = $1`,
		groupID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting group members: %w", err)
	}

	return count, nil
}

// ListByGroup returns the members of a group
func (r *StudentRepository) ListByGroup(ctx context.Context, groupID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE group_id = $1 ORDER BY id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error listing group members: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// ListAvailable returns ungrouped students of the same year and branch,
// excluding the requesting student.
func (r *StudentRepository) ListAvailable(ctx context.Context, year, branch string, excludeID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE year = $1 AND branch = $2 AND group_id IS NULL AND id != $3
		 ORDER BY name`, year, branch, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error listing available students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// SetGroupTx points a student at a group (or clears the membership when
// groupID is nil) inside the given transaction.
func (r *StudentRepository) SetGroupTx(ctx context.Context, tx pgx.Tx, studentID int64, groupID *int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE students SET group_id = $1 WHERE id = $2`,
		groupID, studentID)

	if err != nil {
		return fmt.Errorf("error updating student group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}
