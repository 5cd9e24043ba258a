package deactivate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

func TestCanSkipRestriction(t *testing.T) {
	tests := []struct {
		name     string
		skipList []string
		strategy Strategy
		want     bool
	}{
		{"empty list, soft", nil, StrategySoft, false},
		{"empty list, hard", nil, StrategyHard, false},
		{"named, hard", []string{"active_orders"}, StrategyHard, false},
		{"named, soft", []string{"active_orders"}, StrategySoft, true},
		{"named, default strategy", []string{"active_orders"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanSkipRestriction(tt.skipList, tt.strategy))
		})
	}
}

func TestCommand_Skips(t *testing.T) {
	cmd := Command{
		ID:               id.New(),
		Strategy:         StrategySoft,
		SkipRestrictions: []string{"active_orders"},
	}

	assert.True(t, cmd.Skips("active_orders"))
	assert.False(t, cmd.Skips("open_invoices"))

	cmd.Strategy = StrategyHard
	assert.False(t, cmd.Skips("active_orders"), "hard deletes never skip restrictions")
}

func TestCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"soft", NewCommand(id.New()), false},
		{"hard", NewHardCommand(id.New()), false},
		{"empty strategy defaults to soft", Command{ID: id.New()}, false},
		{"unknown strategy", Command{ID: id.New(), Strategy: "purge"}, true},
		{"nil id", Command{Strategy: StrategySoft}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommand_Normalize(t *testing.T) {
	cmd := Command{ID: id.New()}
	cmd.Normalize()
	assert.Equal(t, StrategySoft, cmd.Strategy)

	hard := NewHardCommand(id.New())
	hard.Normalize()
	assert.Equal(t, StrategyHard, hard.Strategy)
}
