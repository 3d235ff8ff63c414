package handler

import (
	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/dto"
	"github.com/itsmrajesh/quizgen-backend/internal/middleware"
	"github.com/itsmrajesh/quizgen-backend/internal/service"
	"github.com/itsmrajesh/quizgen-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// CreateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a multiple-choice test paper on a topic and records the cost against the caller
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/create [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	if identity == nil {
		// Route misconfiguration; Protected must run first.
		return domain.NewUnauthorizedError("Request is not authenticated", nil)
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	genReq, validationErrs := h.validator.ValidateCreateQuizRequest(&req)
	if validationErrs != nil {
		return validationErrs
	}

	resp, err := h.service.CreateQuiz(c.UserContext(), identity, genReq)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
