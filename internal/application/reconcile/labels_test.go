package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boardsync/internal/domain/ticket"
)

func TestApplyLabelComponent(t *testing.T) {
	tk := ticket.New("Fix bug", "")

	mapped := ApplyLabel(tk, "Zandmotor")

	assert.True(t, mapped)
	assert.Equal(t, "Zandmotor", tk.Component())
	assert.Empty(t, tk.Priority())
	assert.Empty(t, tk.Keywords())
}

func TestApplyLabelLegacyComponentName(t *testing.T) {
	tk := ticket.New("Fix bug", "")

	mapped := ApplyLabel(tk, "3TU.DC")

	assert.True(t, mapped)
	assert.Equal(t, "Datacentrum", tk.Component())
}

func TestApplyLabelPriority(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"P1", "highest"},
		{"P2", "high"},
		{"P3", "normal"},
		{"P4", "low"},
		{"P5", "lowest"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			tk := ticket.New("Fix bug", "")

			mapped := ApplyLabel(tk, tt.label)

			assert.True(t, mapped)
			assert.Equal(t, tt.expected, tk.Priority())
			assert.Empty(t, tk.Component())
		})
	}
}

func TestApplyLabelUnmappedGoesToKeywords(t *testing.T) {
	tk := ticket.New("Fix bug", "")

	mapped := ApplyLabel(tk, "urgent-custom")

	assert.False(t, mapped)
	assert.Equal(t, " urgent-custom", tk.Keywords())
}

// Keywords are append-only; applying the same unmapped label twice records
// it twice.
func TestApplyLabelKeywordsNeverDeduplicated(t *testing.T) {
	tk := ticket.New("Fix bug", "")

	ApplyLabel(tk, "urgent-custom")
	ApplyLabel(tk, "urgent-custom")

	assert.Equal(t, " urgent-custom urgent-custom", tk.Keywords())
}
