package entity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.False(t, e.ID.String() == "00000000-0000-0000-0000-000000000000")
	assert.True(t, e.IsActive)
	assert.Equal(t, 1, e.Version)
	assert.Nil(t, e.DeletedAt)
	assert.WithinDuration(t, time.Now().UTC(), e.CreatedAt, time.Second)
}

func TestBaseEntity_Deactivate(t *testing.T) {
	e := NewBaseEntity()

	e.Deactivate()

	assert.False(t, e.IsActive)
	require.NotNil(t, e.DeletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *e.DeletedAt, time.Second)
}

func TestBaseEntity_Deactivate_Idempotent(t *testing.T) {
	e := NewBaseEntity()

	e.Deactivate()
	require.NotNil(t, e.DeletedAt)
	first := *e.DeletedAt

	time.Sleep(5 * time.Millisecond)
	e.Deactivate()

	// Second call must not move the deletion timestamp.
	assert.Equal(t, first, *e.DeletedAt)
	assert.False(t, e.IsActive)
}

func TestBaseEntity_Restore(t *testing.T) {
	e := NewBaseEntity()
	e.Deactivate()

	e.Restore()

	assert.True(t, e.IsActive)
	assert.Nil(t, e.DeletedAt)
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	before := e.UpdatedAt

	time.Sleep(time.Millisecond)
	e.Touch()

	assert.Equal(t, 2, e.Version)
	assert.True(t, e.UpdatedAt.After(before))
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{"valid", NewCatalog("CUST-001", "Acme Inc."), false},
		{"empty name", NewCatalog("CUST-002", ""), true},
		{"empty code is allowed", NewCatalog("", "No Code Yet"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
