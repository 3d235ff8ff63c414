package service

import (
	"context"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/dto"
	"github.com/itsmrajesh/quizgen-backend/internal/logger"

	"go.uber.org/zap"
)

// QuizService orchestrates a single generation request:
// cost gate -> generate -> record -> respond.
type QuizService interface {
	CreateQuiz(ctx context.Context, identity *domain.Identity, req domain.GenerationRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	usageRepo domain.UsageRepository
	generator domain.QuizGenerationService
	costLimit float64
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(usageRepo domain.UsageRepository, generator domain.QuizGenerationService, costLimit float64) QuizService {
	return &quizService{
		usageRepo: usageRepo,
		generator: generator,
		costLimit: costLimit,
	}
}

// CreateQuiz implements QuizService. Every step is strictly ordered and
// no state survives the call.
//
// The cost gate and the record write are deliberately not one
// transaction: two concurrent requests from the same email can both pass
// the gate before either commits, so cumulative spend can overshoot the
// ceiling by up to one generation. That matches the original system's
// behavior and is accepted.
func (s *quizService) CreateQuiz(ctx context.Context, identity *domain.Identity, req domain.GenerationRequest) (*dto.QuizResponse, error) {
	appLogger := logger.Get()

	// Gate on spend already recorded. A read failure is not a zero
	// balance; it fails the request.
	spent, err := s.usageRepo.SumCostByEmail(ctx, identity.Email)
	if err != nil {
		return nil, domain.NewLedgerError("Failed to read usage ledger", err)
	}
	// Strictly greater than: an identity sitting exactly at the ceiling
	// may still generate.
	if spent > s.costLimit {
		appLogger.Warn("Cost limit exceeded",
			zap.String("email", identity.Email),
			zap.Float64("spent", spent),
			zap.Float64("limit", s.costLimit))
		return nil, domain.NewQuotaExceededError(identity.Email, spent, s.costLimit)
	}

	paper, usage, err := s.generator.GenerateTestPaper(ctx, req)
	if err != nil {
		return nil, err
	}

	// Success is conditioned on durable accounting: if the write fails,
	// the generated paper is discarded rather than returned uncharged.
	record := &domain.UsageRecord{
		Name:            identity.Name,
		Email:           identity.Email,
		QuizTitle:       req.Topic,
		DifficultyLevel: string(req.Level),
		NoOfQuestions:   req.QuestionCount,
		Cost:            usage.Cost,
	}
	if err := s.usageRepo.Save(ctx, record); err != nil {
		appLogger.Error("Failed to record usage, discarding generated paper",
			zap.Error(err),
			zap.String("email", identity.Email),
			zap.String("topic", req.Topic))
		return nil, domain.NewLedgerError("Failed to record usage", err)
	}

	appLogger.Info("Quiz generated and recorded",
		zap.String("record_id", record.ID),
		zap.String("email", identity.Email),
		zap.String("topic", req.Topic),
		zap.Float64("cost", usage.Cost))

	return &dto.QuizResponse{
		TestPaper:    *paper,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
		Cost:         usage.Cost,
	}, nil
}
