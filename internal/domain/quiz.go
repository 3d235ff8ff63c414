package domain

import "context"

// DifficultyLevel is the requested difficulty of a generated test paper.
type DifficultyLevel string

const (
	LevelEasy   DifficultyLevel = "easy"
	LevelMedium DifficultyLevel = "medium"
	LevelHard   DifficultyLevel = "hard"
)

// ValidDifficulty reports whether s is one of the accepted levels.
func ValidDifficulty(s string) bool {
	switch DifficultyLevel(s) {
	case LevelEasy, LevelMedium, LevelHard:
		return true
	}
	return false
}

// OptionsPerQuestion is the number of choices the prompt contract asks
// the model to produce for each question.
const OptionsPerQuestion = 4

// Question is a single multiple-choice question. CorrectAnswer is
// expected to equal one of Options; the prompt and schema enforce shape,
// the model is trusted for the semantic part.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// TestPaper is a generated quiz: a title plus its questions.
type TestPaper struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Validate checks the structural invariants a usable paper must hold.
func (p *TestPaper) Validate() error {
	if p.Title == "" {
		return NewError(CodeLLMServiceError, "generated paper has no title", nil)
	}
	if len(p.Questions) == 0 {
		return NewError(CodeLLMServiceError, "generated paper has no questions", nil)
	}
	return nil
}

// GenerationRequest is the validated input to the quiz generator.
type GenerationRequest struct {
	Topic         string
	QuestionCount int
	Level         DifficultyLevel
}

// GenerationUsage is the provider's metering for one generation call.
// Cost is in the same currency-agnostic unit the ledger records.
type GenerationUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Cost         float64
}

// QuizGenerationService produces a schema-valid test paper for a request.
// A single attempt per call; retries are not performed at this layer.
type QuizGenerationService interface {
	GenerateTestPaper(ctx context.Context, req GenerationRequest) (*TestPaper, *GenerationUsage, error)
}
