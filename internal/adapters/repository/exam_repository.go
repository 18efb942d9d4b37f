package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/ports"
)

// ExamRepositoryImpl is the remote row-store variant of the persistence
// adapter, backed by Postgres. Every statement is scoped by user_id; an
// update or delete against another user's row reports not found.
type ExamRepositoryImpl struct {
	db *sqlx.DB
}

// NewExamRepository creates a new Postgres-backed exam repository
func NewExamRepository(db *sqlx.DB) ports.ExamRepository {
	return &ExamRepositoryImpl{db: db}
}

func (r *ExamRepositoryImpl) LoadAll(ctx context.Context, userID uuid.UUID) ([]entities.Exam, error) {
	query := `
		SELECT id, title, subject, exam_date, description, priority
		FROM exams
		WHERE user_id = $1
		ORDER BY created_at, id`

	exams := []entities.Exam{}
	if err := r.db.SelectContext(ctx, &exams, query, userID); err != nil {
		return nil, fmt.Errorf("load exams: %w", err)
	}

	return exams, nil
}

func (r *ExamRepositoryImpl) Create(ctx context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error) {
	query := `
		INSERT INTO exams (id, user_id, title, subject, exam_date, description, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, query,
		exam.ID, userID, exam.Title, exam.Subject, exam.Date,
		exam.Description, exam.Priority,
	).Scan(&exam.ID)
	if err != nil {
		return entities.Exam{}, fmt.Errorf("create exam: %w", err)
	}

	return exam, nil
}

func (r *ExamRepositoryImpl) Update(ctx context.Context, userID uuid.UUID, exam entities.Exam) (entities.Exam, error) {
	query := `
		UPDATE exams
		SET title = $3, subject = $4, exam_date = $5, description = $6,
			priority = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING id`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		exam.ID, userID, exam.Title, exam.Subject, exam.Date,
		exam.Description, exam.Priority,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return entities.Exam{}, entities.ErrExamNotFound
		}
		return entities.Exam{}, fmt.Errorf("update exam: %w", err)
	}

	return exam, nil
}

func (r *ExamRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	query := `DELETE FROM exams WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrExamNotFound
	}

	return nil
}
