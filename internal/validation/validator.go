package validation

import (
	"strings"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/dto"
)

const (
	MinQuestionCount     = 1
	MaxQuestionCount     = 10
	DefaultQuestionCount = 10
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuizRequest checks the request body and, when it is
// valid, returns the normalized generation request with defaults
// applied: 10 questions, medium difficulty. The validation runs before
// any provider or ledger access.
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) (domain.GenerationRequest, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errs = append(errs, domain.NewMissingFieldError("topic"))
	}

	count := DefaultQuestionCount
	if req.QuestionCount != nil {
		count = *req.QuestionCount
		if count < MinQuestionCount || count > MaxQuestionCount {
			errs = append(errs, domain.NewOutOfRangeError("question_count", count, MinQuestionCount, MaxQuestionCount))
		}
	}

	level := domain.LevelMedium
	if req.Level != "" {
		if !domain.ValidDifficulty(req.Level) {
			errs = append(errs, domain.NewInvalidFormatError("level", req.Level))
		} else {
			level = domain.DifficultyLevel(req.Level)
		}
	}

	if len(errs) > 0 {
		return domain.GenerationRequest{}, errs
	}

	return domain.GenerationRequest{
		Topic:         topic,
		QuestionCount: count,
		Level:         level,
	}, nil
}
