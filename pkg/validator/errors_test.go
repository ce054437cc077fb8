package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
		assert.True(t, errs.IsEmpty())
	})

	t.Run("message lists failures in order", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "name", Message: "too short"})
		assert.Equal(t, "validation failed: email: is required; name: too short", errs.Error())
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{Field: "name", Message: "too short"},
			{Field: "email", Message: "is required"},
			{Field: "name", Message: "bad characters"},
		}
		assert.True(t, errs.Has("name"))
		assert.False(t, errs.Has("phone"))
		assert.Equal(t, []string{"too short", "bad characters"}, errs.Get("name"))
		assert.Equal(t, "too short", errs.First("name"))
		assert.Empty(t, errs.First("phone"))
		assert.Equal(t, []string{"name", "email"}, errs.Fields())
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.False(t, validator.IsValidationError(nil))
	assert.False(t, validator.IsValidationError(errors.New("boom")))

	err := fmt.Errorf("submit: %w", validator.First(validator.Required("name", "")))
	require.True(t, validator.IsValidationError(err))
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, validator.CodeRequired, errs[0].Code)
}
