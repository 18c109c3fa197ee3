package validation_test

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpdate() models.UpdateReviewInput {
	return models.UpdateReviewInput{
		Comment:       "loved it",
		Rating:        4.5,
		ReadingStatus: models.StatusFinished,
		ReadPages:     120,
		StartReadAt:   "2024-01-02",
		FinishReadAt:  "",
		Tags:          "fiction",
	}
}

func TestValidate_Valid(t *testing.T) {
	v := validation.New()
	require.NoError(t, v.Validate(validUpdate()))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name   string
		mutate func(*models.UpdateReviewInput)
		field  string
	}{
		{name: "rating too high", mutate: func(in *models.UpdateReviewInput) { in.Rating = 5.5 }, field: "rating"},
		{name: "rating not half step", mutate: func(in *models.UpdateReviewInput) { in.Rating = 3.3 }, field: "rating"},
		{name: "negative pages", mutate: func(in *models.UpdateReviewInput) { in.ReadPages = -1 }, field: "readPages"},
		{name: "bad status", mutate: func(in *models.UpdateReviewInput) { in.ReadingStatus = "Paused" }, field: "readingStatus"},
		{name: "bad date", mutate: func(in *models.UpdateReviewInput) { in.StartReadAt = "02/01/2024" }, field: "startReadAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validUpdate()
			tt.mutate(&in)

			err := v.Validate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validation.ErrValidation))

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidate_RegisterPasswordConfirmation(t *testing.T) {
	v := validation.New()

	err := v.Validate(models.RegisterInput{Name: "a", Email: "a@example.com", Password: "x", PasswordConfirmation: "y"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must match Password", verr.Fields["passwordConfirmation"])
}

func TestError_MessageIsSorted(t *testing.T) {
	err := &validation.Error{Fields: map[string]string{"rating": "is invalid", "comment": "is required"}}
	assert.Equal(t, "validation failed: comment is required; rating is invalid", err.Error())
}

func TestIsHalfStep(t *testing.T) {
	for _, f := range []float64{0, 0.5, 1, 3, 4.5, 5} {
		assert.True(t, validation.IsHalfStep(f), "%v", f)
	}
	for _, f := range []float64{0.25, 3.3, 4.75} {
		assert.False(t, validation.IsHalfStep(f), "%v", f)
	}
}
