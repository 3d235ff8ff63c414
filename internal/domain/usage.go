package domain

import (
	"context"
	"time"
)

// UsageRecord is one durable row of generation accounting. Records are
// append-only: never mutated or deleted by this service.
type UsageRecord struct {
	ID              string
	Name            string
	Email           string
	QuizTitle       string
	DifficultyLevel string
	NoOfQuestions   int
	Cost            float64
	CreatedAt       time.Time
}

// UsageRepository is the ledger. Both operations surface storage
// failures to the caller; a read error is distinguishable from a zero
// balance.
type UsageRepository interface {
	// Save appends one record and fills in its assigned ID.
	Save(ctx context.Context, record *UsageRecord) error

	// SumCostByEmail returns the cumulative recorded cost for an email,
	// 0 when no records exist.
	SumCostByEmail(ctx context.Context, email string) (float64, error)
}
