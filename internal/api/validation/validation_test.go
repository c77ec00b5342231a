package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rotationInput struct {
	Title    string `binding:"required"`
	Duration string `binding:"required,duration"`
	InternID string `binding:"omitempty,uuid"`
}

func TestRegister_DurationRule(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register(), "second call is a no-op")

	assert.NoError(t, binding.Validator.ValidateStruct(&rotationInput{Title: "Bloc", Duration: "quarter"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&rotationInput{Title: "Bloc", Duration: "half_year"}))

	err := binding.Validator.ValidateStruct(&rotationInput{Title: "Bloc", Duration: "year"})
	require.Error(t, err)
	assert.Equal(t, "duration: must be one of quarter, half_year", FormatErrors(err))
}

func TestFormatErrors(t *testing.T) {
	require.NoError(t, Register())

	err := binding.Validator.ValidateStruct(&rotationInput{InternID: "nope"})
	require.Error(t, err)
	assert.Equal(t, "duration: is required; intern_id: must be a uuid; title: is required", FormatErrors(err))

	assert.Equal(t, "unexpected EOF", FormatErrors(errors.New("unexpected EOF")))
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "intern_id", toSnake("InternID"))
	assert.Equal(t, "total_slots", toSnake("TotalSlots"))
	assert.Equal(t, "title", toSnake("Title"))
}
