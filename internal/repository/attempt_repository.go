package repository

import (
	"context"
	"fmt"
	"time"

	"ielts-reading/internal/domain"
	"ielts-reading/internal/repository/models"
	"ielts-reading/internal/util"
)

// MaxAttemptsPage caps ListRecentAttempts
const MaxAttemptsPage = 100

// sqlxAttemptRepository implements domain.AttemptRepository on Oracle through sqlx
type sqlxAttemptRepository struct {
	db DBTX
}

// NewSQLXAttemptRepository creates an attempt repository on db
func NewSQLXAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.ReadingAttempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	return &domain.Attempt{
		ID:             m.ID,
		TestType:       domain.TestVariant(m.TestType),
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		BandScore:      m.BandScore,
		CreatedAt:      m.CreatedAt,
	}
}

func fromDomainAttempt(a *domain.Attempt) *models.ReadingAttempt {
	if a == nil {
		return nil
	}
	return &models.ReadingAttempt{
		ID:             a.ID,
		TestType:       string(a.TestType),
		TotalQuestions: a.TotalQuestions,
		CorrectAnswers: a.CorrectAnswers,
		BandScore:      a.BandScore,
		CreatedAt:      a.CreatedAt,
	}
}

// CreateAttempt inserts a scoring summary. Missing id and timestamp are filled in.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return fmt.Errorf("attempt is nil")
	}
	row := fromDomainAttempt(attempt)
	if row.ID == "" {
		row.ID = util.NewULID()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	query := `INSERT INTO reading_attempts (ID, TEST_TYPE, TOTAL_QUESTIONS, CORRECT_ANSWERS, BAND_SCORE, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.TestType,
		row.TotalQuestions,
		row.CorrectAnswers,
		row.BandScore,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reading attempt: %w", err)
	}

	attempt.ID = row.ID
	attempt.CreatedAt = row.CreatedAt
	return nil
}

// ListRecentAttempts returns the newest attempts first. limit is clamped to 1..MaxAttemptsPage.
func (r *sqlxAttemptRepository) ListRecentAttempts(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	if limit <= 0 {
		limit = 1
	}
	if limit > MaxAttemptsPage {
		limit = MaxAttemptsPage
	}

	query := `SELECT ID, TEST_TYPE, TOTAL_QUESTIONS, CORRECT_ANSWERS, BAND_SCORE, CREATED_AT
	          FROM reading_attempts
	          ORDER BY CREATED_AT DESC
	          FETCH FIRST :1 ROWS ONLY`

	var rows []models.ReadingAttempt
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list reading attempts: %w", err)
	}

	attempts := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}
