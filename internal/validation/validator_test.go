package validation

import (
	"testing"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/dto"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestValidateCreateQuizRequest_Defaults(t *testing.T) {
	v := NewValidator()

	req, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{Topic: "Photosynthesis"})

	assert.Nil(t, errs)
	assert.Equal(t, "Photosynthesis", req.Topic)
	assert.Equal(t, DefaultQuestionCount, req.QuestionCount)
	assert.Equal(t, domain.LevelMedium, req.Level)
}

func TestValidateCreateQuizRequest_ExplicitValues(t *testing.T) {
	v := NewValidator()

	req, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{
		Topic:         "Photosynthesis",
		QuestionCount: intPtr(3),
		Level:         "easy",
	})

	assert.Nil(t, errs)
	assert.Equal(t, 3, req.QuestionCount)
	assert.Equal(t, domain.LevelEasy, req.Level)
}

func TestValidateCreateQuizRequest_MissingTopic(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{Topic: "   "})

	assert.Len(t, errs, 1)
	assert.Equal(t, "topic", errs[0].Field)
}

func TestValidateCreateQuizRequest_QuestionCountBounds(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name  string
		count int
		valid bool
	}{
		{"zero rejected", 0, false},
		{"one accepted", 1, true},
		{"ten accepted", 10, true},
		{"eleven rejected", 11, false},
		{"negative rejected", -1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{
				Topic:         "History",
				QuestionCount: intPtr(tc.count),
			})
			if tc.valid {
				assert.Nil(t, errs)
				assert.Equal(t, tc.count, req.QuestionCount)
			} else {
				assert.Len(t, errs, 1)
				assert.Equal(t, "question_count", errs[0].Field)
			}
		})
	}
}

func TestValidateCreateQuizRequest_InvalidLevel(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{
		Topic: "History",
		Level: "impossible",
	})

	assert.Len(t, errs, 1)
	assert.Equal(t, "level", errs[0].Field)
}

func TestValidateCreateQuizRequest_CollectsAllErrors(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateCreateQuizRequest(&dto.CreateQuizRequest{
		Topic:         "",
		QuestionCount: intPtr(0),
		Level:         "extreme",
	})

	assert.Len(t, errs, 3)
}
