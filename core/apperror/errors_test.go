package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	DaysBack int    `validate:"min=1,max=365"`
	GroupBy  string `validate:"oneof=day week month year"`
}

func TestFromValidator(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		in      params
		field   string
		message string
	}{
		{"below min", params{DaysBack: 0, GroupBy: "day"}, "DaysBack", "must be at least 1"},
		{"above max", params{DaysBack: 366, GroupBy: "day"}, "DaysBack", "must be at most 365"},
		{"bad enum", params{DaysBack: 30, GroupBy: "hour"}, "GroupBy", "must be one of [day, week, month, year]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromValidator(v.Struct(tt.in))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.True(t, IsValidation(err))
		})
	}

	t.Run("passes through other errors", func(t *testing.T) {
		plain := fmt.Errorf("boom")
		assert.Equal(t, plain, FromValidator(plain))
	})
}

func TestUpstreamError(t *testing.T) {
	err := NewUpstreamError("list deployments", 503, context.DeadlineExceeded)
	wrapped := fmt.Errorf("catalog usage: %w", err)

	assert.True(t, IsUpstream(wrapped))
	assert.True(t, errors.Is(wrapped, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), "status 503")

	noStatus := NewUpstreamError("fetch resources", 0, errors.New("connection refused"))
	assert.Equal(t, "upstream fetch resources failed: connection refused", noStatus.Error())
	assert.False(t, IsValidation(wrapped))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewValidationError("days_back", 0, "must be at least 1")))
	assert.Equal(t, http.StatusBadGateway, StatusCode(fmt.Errorf("report: %w", NewUpstreamError("list deployments", 503, errors.New("down")))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
