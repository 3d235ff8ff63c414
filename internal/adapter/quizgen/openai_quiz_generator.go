package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/llm"

	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"
)

// testPaperSchemaName identifies the fixed response schema to the provider.
const testPaperSchemaName = "test-paper"

// promptTemplate is the fixed generation prompt. The wording matches the
// service's contract: a title plus at least question_count questions,
// four options each, one correct answer, JSON output.
var promptTemplate = prompts.NewPromptTemplate(
	"Generate a test paper on the topic of '{{.topic}}'. "+
		"The test should have a title and at least {{.question_count}} questions with multiple-choice answers "+
		"with difficulty level {{.level}}. Each question should have 4 options and one correct answer. "+
		"The output should be in JSON format.",
	[]string{"topic", "question_count", "level"},
)

// testPaperSchema is the JSON Schema the provider must conform to.
// Option cardinality is asked for in the prompt, not pinned here, so a
// model returning 3 or 5 options still parses; correct_answer membership
// is likewise left to model compliance.
var testPaperSchema = &llm.Schema{
	Name: testPaperSchemaName,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Title of the test",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "List of questions in the test",
				"minItems":    1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "One of the questions from the given topic",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "List of possible answers",
							"items":       map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The correct answer from the options",
						},
					},
					"required":             []string{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"title", "questions"},
		"additionalProperties": false,
	},
}

// OpenAIQuizGenerator implements domain.QuizGenerationService on top of
// an llm.Provider.
type OpenAIQuizGenerator struct {
	provider    llm.Provider
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewOpenAIQuizGenerator creates a new generator.
func NewOpenAIQuizGenerator(provider llm.Provider, temperature float64, maxTokens int, logger *zap.Logger) *OpenAIQuizGenerator {
	return &OpenAIQuizGenerator{
		provider:    provider,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// GenerateTestPaper renders the prompt, makes a single provider call and
// returns the validated paper with its usage accounting. No retries.
func (g *OpenAIQuizGenerator) GenerateTestPaper(ctx context.Context, req domain.GenerationRequest) (*domain.TestPaper, *domain.GenerationUsage, error) {
	prompt, err := promptTemplate.Format(map[string]any{
		"topic":          req.Topic,
		"question_count": req.QuestionCount,
		"level":          string(req.Level),
	})
	if err != nil {
		return nil, nil, domain.NewInternalError("failed to render generation prompt", err)
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Schema:      testPaperSchema,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, nil, domain.NewLLMServiceError(err)
	}

	var paper domain.TestPaper
	if err := json.Unmarshal(resp.Content, &paper); err != nil {
		return nil, nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse provider response: %w", err))
	}
	if err := paper.Validate(); err != nil {
		return nil, nil, err
	}
	if len(paper.Questions) < req.QuestionCount {
		return nil, nil, domain.NewLLMServiceError(fmt.Errorf(
			"provider returned %d questions, prompt asked for at least %d",
			len(paper.Questions), req.QuestionCount))
	}

	usage := &domain.GenerationUsage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		Cost:         g.costFor(resp.Usage),
	}

	g.logger.Info("Generated test paper",
		zap.String("topic", req.Topic),
		zap.String("level", string(req.Level)),
		zap.Int("questions", len(paper.Questions)),
		zap.Int("input_tokens", usage.InputTokens),
		zap.Int("output_tokens", usage.OutputTokens),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Float64("cost", usage.Cost),
	)

	return &paper, usage, nil
}

// costFor prices a call from the configured model's pricing table.
// An unknown model is recorded at zero cost rather than failing the
// request; the warning gives operators a chance to extend the table.
func (g *OpenAIQuizGenerator) costFor(usage llm.Usage) float64 {
	pricing := llm.LookupCost(g.provider.ModelID())
	if pricing == nil {
		g.logger.Warn("No pricing for model, recording zero cost",
			zap.String("model", g.provider.ModelID()))
		return 0
	}
	return pricing.Cost(usage.InputTokens, usage.OutputTokens)
}

var _ domain.QuizGenerationService = (*OpenAIQuizGenerator)(nil)
