package apperror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Name    string `json:"deploymentName" validate:"required"`
	GroupBy string `json:"group_by,omitempty" validate:"omitempty,oneof=day week"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(request{Name: "web"}))

	err := Validate(request{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "deploymentName", verr.Field)
	assert.Equal(t, "is required", verr.Message)

	err = Validate(request{Name: "web", GroupBy: "hour"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "group_by", verr.Field)
	assert.Equal(t, "must be one of [day, week]", verr.Message)
}
