package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/projecthub/internal/app/models"
)

// IMarksRepository defines the interface for marks database operations
type IMarksRepository interface {
	Upsert(ctx context.Context, marks *models.Marks) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Marks, error)
	ListByGiver(ctx context.Context, givenBy int64) ([]*models.Marks, error)
}

// MarksRepository handles marks database operations
type MarksRepository struct {
	db *pgxpool.Pool
}

// NewMarksRepository creates a new MarksRepository
func NewMarksRepository(db *pgxpool.Pool) *MarksRepository {
	return &MarksRepository{db: db}
}

// Upsert writes a mark sheet, replacing any earlier sheet the same evaluator
// gave the same student. Total is always recomputed from the components.
func (r *MarksRepository) Upsert(ctx context.Context, marks *models.Marks) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO marks (student_id, presentation, documents, collaboration, total, given_by, given_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (student_id, given_by) DO UPDATE
		SET presentation = EXCLUDED.presentation,
		    documents = EXCLUDED.documents,
		    collaboration = EXCLUDED.collaboration,
		    total = EXCLUDED.total,
		    given_at = NOW()`,
		marks.StudentID, marks.Presentation, marks.Documents, marks.Collaboration,
		marks.Presentation+marks.Documents+marks.Collaboration, marks.GivenBy)

	if err != nil {
		return fmt.Errorf("error upserting marks: %w", err)
	}

	return nil
}

// ListByStudent returns every mark sheet a student has received
func (r *MarksRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Marks, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, presentation, documents, collaboration, total, given_by, given_at
		FROM marks WHERE student_id = $1 ORDER BY given_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student marks: %w", err)
	}
	defer rows.Close()

	return collectMarks(rows)
}

// ListByGiver returns every mark sheet an evaluator has assigned
func (r *MarksRepository) ListByGiver(ctx context.Context, givenBy int64) ([]*models.Marks, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, presentation, documents, collaboration, total, given_by, given_at
		FROM marks WHERE given_by = $1 ORDER BY given_at DESC`, givenBy)
	if err != nil {
		return nil, fmt.Errorf("error listing given marks: %w", err)
	}
	defer rows.Close()

	return collectMarks(rows)
}

func collectMarks(rows pgx.Rows) ([]*models.Marks, error) {
	var sheets []*models.Marks
	for rows.Next() {
		m := &models.Marks{}
		err := rows.Scan(&m.ID, &m.StudentID, &m.Presentation, &m.Documents,
			&m.Collaboration, &m.Total, &m.GivenBy, &m.GivenAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning marks: %w", err)
		}
		sheets = append(sheets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating marks: %w", err)
	}
	return sheets, nil
}
