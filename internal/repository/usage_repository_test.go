package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleRecord() *domain.UsageRecord {
	return &domain.UsageRecord{
		Name:            "Test User",
		Email:           "user@example.com",
		QuizTitle:       "World War II",
		DifficultyLevel: "medium",
		NoOfQuestions:   5,
		Cost:            0.0125,
	}
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectExec("INSERT INTO quizzes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := sampleRecord()
	err := repo.Save(context.Background(), record)

	assert.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_KeepsExistingID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectExec("INSERT INTO quizzes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := sampleRecord()
	record.ID = "01HZX5YB4TQ2M3N4P5Q6R7S8T9"
	record.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err := repo.Save(context.Background(), record)

	assert.NoError(t, err)
	assert.Equal(t, "01HZX5YB4TQ2M3N4P5Q6R7S8T9", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectExec("INSERT INTO quizzes").
		WillReturnError(errors.New("connection reset"))

	err := repo.Save(context.Background(), sampleRecord())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert usage record")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumCostByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\) FROM quizzes`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.75))

	total, err := repo.SumCostByEmail(context.Background(), "user@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 0.75, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumCostByEmail_NoRecords(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\) FROM quizzes`).
		WithArgs("fresh@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	total, err := repo.SumCostByEmail(context.Background(), "fresh@example.com")

	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumCostByEmail_QueryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXUsageRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\) FROM quizzes`).
		WithArgs("user@example.com").
		WillReturnError(errors.New("relation does not exist"))

	total, err := repo.SumCostByEmail(context.Background(), "user@example.com")

	assert.Error(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageConverters_RoundTrip(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := &domain.UsageRecord{
		ID:              "01HZX5YB4TQ2M3N4P5Q6R7S8T9",
		Name:            "Test User",
		Email:           "user@example.com",
		QuizTitle:       "World War II",
		DifficultyLevel: "medium",
		NoOfQuestions:   5,
		Cost:            0.0125,
		CreatedAt:       created,
	}

	row := fromDomainUsage(record)
	require.NotNil(t, row)
	assert.Equal(t, record.ID, row.ID)
	assert.Equal(t, record.Email, row.Email)
	assert.Equal(t, record.QuizTitle, row.QuizTitle)

	back := toDomainUsage(row)
	require.NotNil(t, back)
	assert.Equal(t, record, back)
}

func TestUsageConverters_Nil(t *testing.T) {
	assert.Nil(t, fromDomainUsage(nil))
	assert.Nil(t, toDomainUsage(nil))

	var row *models.Usage
	assert.Nil(t, toDomainUsage(row))
}
