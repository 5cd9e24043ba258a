package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		windowSeconds int
		maxRequests   int
		wantErr       bool
	}{
		{"valid", 30, 100, false},
		{"zero window", 0, 5, true},
		{"zero max", 5, 0, true},
		{"negative window", -1, 5, true},
		{"negative max", 5, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, err := New(tt.windowSeconds, tt.maxRequests)
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err), "expected validation error, got %v", err)
				assert.True(t, limit.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.windowSeconds, limit.WindowSeconds())
			assert.Equal(t, tt.maxRequests, limit.MaxRequests())
		})
	}
}

func TestDefault(t *testing.T) {
	limit := Default()

	assert.Equal(t, 60, limit.WindowSeconds())
	assert.Equal(t, 60, limit.MaxRequests())

	fromNew, err := New(60, 60)
	require.NoError(t, err)
	assert.Equal(t, fromNew, limit)
}

func TestLimit_Window(t *testing.T) {
	limit, err := New(90, 10)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, limit.Window())
}

func TestLimit_String(t *testing.T) {
	limit, err := New(30, 100)
	require.NoError(t, err)
	assert.Equal(t, "100 requests per 30 seconds", limit.String())

	assert.Equal(t, "60 requests per 60 seconds", Default().String())
}
