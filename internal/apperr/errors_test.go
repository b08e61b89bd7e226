package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsAllViolations(t *testing.T) {
	var v Validator
	v.Check(false, "name", "too short")
	v.Check(true, "description", "required")
	v.Check(false, "price", "must be positive")
	v.Add("categories", "at least one category")

	err := v.Err()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldMessage{
		{FieldName: "name", Message: "too short"},
		{FieldName: "price", Message: "must be positive"},
		{FieldName: "categories", Message: "at least one category"},
	}, verr.Errors)
	assert.Contains(t, err.Error(), "name: too short")
}

func TestValidatorNoViolations(t *testing.T) {
	var v Validator
	v.Check(true, "name", "too short")
	assert.NoError(t, v.Err())
}
