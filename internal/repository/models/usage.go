package models

import "time"

// Usage is the database row for one recorded generation. Rows are
// append-only; there is no updated_at or deleted_at.
type Usage struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	QuizTitle       string    `db:"quiz_title"`
	DifficultyLevel string    `db:"difficulty_level"`
	NoOfQuestions   int       `db:"no_of_questions"`
	Cost            float64   `db:"cost"`
	CreatedAt       time.Time `db:"created_at"`
}
