package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		status     string
		successful bool
		failed     bool
		inProgress bool
	}{
		{"CREATE_SUCCESSFUL", true, false, false},
		{"UPDATE_SUCCESSFUL", true, false, false},
		{"CREATE_FAILED", false, true, false},
		{"DELETE_INPROGRESS", false, false, true},
		{"UNKNOWN", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.successful, IsSuccessful(tt.status))
			assert.Equal(t, tt.failed, IsFailed(tt.status))
			assert.Equal(t, tt.inProgress, IsInProgress(tt.status))
		})
	}
}

func TestPresent(t *testing.T) {
	assert.False(t, Present(nil))
	assert.False(t, Present(Ptr("")))
	assert.False(t, Present(Ptr("   ")))
	assert.True(t, Present(Ptr("c1")))
}

func TestExpenseTotal(t *testing.T) {
	assert.True(t, Deployment{}.ExpenseTotal().IsZero())
	assert.True(t, Deployment{Expense: &Expense{}}.ExpenseTotal().IsZero())

	total := decimal.RequireFromString("12.50")
	d := Deployment{Expense: &Expense{Total: &total}}
	assert.True(t, d.ExpenseTotal().Equal(decimal.RequireFromString("12.5")))
}
