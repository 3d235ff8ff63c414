package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/repository/models"
	"github.com/itsmrajesh/quizgen-backend/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUsageRepository implements domain.UsageRepository using sqlx over
// Postgres.
type sqlxUsageRepository struct {
	db *sqlx.DB
}

// NewSQLXUsageRepository creates a new instance of sqlxUsageRepository.
func NewSQLXUsageRepository(db *sqlx.DB) domain.UsageRepository {
	return &sqlxUsageRepository{db: db}
}

// Save appends one usage row. The repository assigns the surrogate key
// and creation timestamp; the caller sees the assigned ID on return.
// Storage failures propagate so the orchestrator can fail the request.
func (r *sqlxUsageRepository) Save(ctx context.Context, record *domain.UsageRecord) error {
	if record.ID == "" {
		record.ID = util.NewULID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	row := fromDomainUsage(record)

	query := `INSERT INTO quizzes (id, name, email, quiz_title, difficulty_level, no_of_questions, cost, created_at)
	          VALUES (:id, :name, :email, :quiz_title, :difficulty_level, :no_of_questions, :cost, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert usage record: %w", err)
	}
	return nil
}

// SumCostByEmail returns the cumulative recorded cost for an email.
// COALESCE keeps a fresh identity at 0 instead of NULL; a query error is
// returned as-is so callers never mistake an unreadable ledger for an
// empty one.
func (r *sqlxUsageRepository) SumCostByEmail(ctx context.Context, email string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(cost), 0) FROM quizzes WHERE email = $1`

	if err := r.db.GetContext(ctx, &total, query, email); err != nil {
		return 0, fmt.Errorf("failed to sum cost for email: %w", err)
	}
	return total, nil
}

func fromDomainUsage(record *domain.UsageRecord) *models.Usage {
	if record == nil {
		return nil
	}
	return &models.Usage{
		ID:              record.ID,
		Name:            record.Name,
		Email:           record.Email,
		QuizTitle:       record.QuizTitle,
		DifficultyLevel: record.DifficultyLevel,
		NoOfQuestions:   record.NoOfQuestions,
		Cost:            record.Cost,
		CreatedAt:       record.CreatedAt,
	}
}

func toDomainUsage(row *models.Usage) *domain.UsageRecord {
	if row == nil {
		return nil
	}
	return &domain.UsageRecord{
		ID:              row.ID,
		Name:            row.Name,
		Email:           row.Email,
		QuizTitle:       row.QuizTitle,
		DifficultyLevel: row.DifficultyLevel,
		NoOfQuestions:   row.NoOfQuestions,
		Cost:            row.Cost,
		CreatedAt:       row.CreatedAt,
	}
}
