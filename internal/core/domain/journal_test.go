package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_IsValid(t *testing.T) {
	tests := []struct {
		outcome Outcome
		valid   bool
	}{
		{OutcomeProcessed, true},
		{OutcomeExcluded, true},
		{OutcomeFailed, true},
		{Outcome("skipped"), false},
		{Outcome(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.outcome.IsValid())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "excluded", OutcomeExcluded.String())
}
