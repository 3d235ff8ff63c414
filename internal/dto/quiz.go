package dto

import "github.com/itsmrajesh/quizgen-backend/internal/domain"

// CreateQuizRequest is the body of POST /quiz/create.
// @Description Request body for quiz generation
type CreateQuizRequest struct {
	Topic         string `json:"topic"`
	QuestionCount *int   `json:"question_count,omitempty"` // 1-10, defaults to 10
	Level         string `json:"level,omitempty"`          // easy|medium|hard, defaults to medium
}

// QuizResponse is the success body: the generated paper plus the token
// and cost accounting for the call that produced it.
// @Description Generated quiz with usage accounting
type QuizResponse struct {
	TestPaper    domain.TestPaper `json:"test_paper"`
	InputTokens  int              `json:"input_tokens"`
	OutputTokens int              `json:"output_tokens"`
	TotalTokens  int              `json:"total_tokens"`
	Cost         float64          `json:"cost"`
}
