package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/llm"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// paperJSON builds a schema-valid test paper with n questions.
func paperJSON(t *testing.T, title string, n int) json.RawMessage {
	t.Helper()
	paper := domain.TestPaper{Title: title}
	for i := 0; i < n; i++ {
		paper.Questions = append(paper.Questions, domain.Question{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		})
	}
	raw, err := json.Marshal(paper)
	assert.NoError(t, err)
	return raw
}

// pricedProvider wraps a MockProvider but reports a model with a known
// pricing table entry.
type pricedProvider struct {
	*llm.MockProvider
}

func (p *pricedProvider) ModelID() string { return "gpt-4o-2024-08-06" }

func TestGenerateTestPaper_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: paperJSON(t, "Photosynthesis Basics", 3),
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 200, TotalTokens: 300},
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	paper, usage, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "Photosynthesis",
		QuestionCount: 3,
		Level:         domain.LevelEasy,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Photosynthesis Basics", paper.Title)
	assert.GreaterOrEqual(t, len(paper.Questions), 3)
	assert.Equal(t, 100, usage.InputTokens)
	assert.Equal(t, 200, usage.OutputTokens)
	assert.Equal(t, 300, usage.TotalTokens)
	assert.Equal(t, usage.InputTokens+usage.OutputTokens, usage.TotalTokens)
}

func TestGenerateTestPaper_PromptContainsRequestFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: paperJSON(t, "Go Concurrency", 5),
		Usage:   llm.Usage{InputTokens: 1, OutputTokens: 1, TotalTokens: 2},
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	_, _, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "Go Concurrency",
		QuestionCount: 5,
		Level:         domain.LevelHard,
	})

	assert.NoError(t, err)
	if assert.Equal(t, 1, mock.CallCount()) {
		prompt := mock.Calls[0].Prompt
		assert.Contains(t, prompt, "'Go Concurrency'")
		assert.Contains(t, prompt, "at least 5 questions")
		assert.Contains(t, prompt, "difficulty level hard")
		assert.NotNil(t, mock.Calls[0].Schema)
	}
}

func TestGenerateTestPaper_CostFromPricingTable(t *testing.T) {
	provider := &pricedProvider{llm.NewMockProvider(llm.MockResponse{
		Content: paperJSON(t, "Algebra", 2),
		Usage:   llm.Usage{InputTokens: 1000, OutputTokens: 1000, TotalTokens: 2000},
	})}
	gen := NewOpenAIQuizGenerator(provider, 0.7, 4096, zap.NewNop())

	_, usage, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "Algebra",
		QuestionCount: 2,
		Level:         domain.LevelMedium,
	})

	assert.NoError(t, err)
	// gpt-4o-2024-08-06: 2.5 in + 10 out per MTok.
	assert.InDelta(t, 0.0125, usage.Cost, 1e-9)
}

func TestGenerateTestPaper_UnknownModelCostsZero(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: paperJSON(t, "Algebra", 2),
		Usage:   llm.Usage{InputTokens: 1000, OutputTokens: 1000, TotalTokens: 2000},
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	_, usage, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "Algebra",
		QuestionCount: 2,
		Level:         domain.LevelMedium,
	})

	assert.NoError(t, err)
	assert.Zero(t, usage.Cost)
}

func TestGenerateTestPaper_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	_, _, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "History",
		QuestionCount: 3,
		Level:         domain.LevelMedium,
	})

	var domainErr *domain.DomainError
	if assert.ErrorAs(t, err, &domainErr) {
		assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	}
}

func TestGenerateTestPaper_SchemaInvalidReply(t *testing.T) {
	// Missing required correct_answer; rejected by schema validation.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"title": "T", "questions": [{"question": "Q?", "options": ["A","B","C","D"]}]}`),
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	_, _, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "History",
		QuestionCount: 1,
		Level:         domain.LevelMedium,
	})

	var domainErr *domain.DomainError
	if assert.ErrorAs(t, err, &domainErr) {
		assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	}
}

func TestGenerateTestPaper_TooFewQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: paperJSON(t, "Short Paper", 2),
		Usage:   llm.Usage{InputTokens: 1, OutputTokens: 1, TotalTokens: 2},
	})
	gen := NewOpenAIQuizGenerator(mock, 0.7, 4096, zap.NewNop())

	_, _, err := gen.GenerateTestPaper(context.Background(), domain.GenerationRequest{
		Topic:         "History",
		QuestionCount: 5,
		Level:         domain.LevelMedium,
	})

	var domainErr *domain.DomainError
	if assert.ErrorAs(t, err, &domainErr) {
		assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	}
}
