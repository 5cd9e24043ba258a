package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
)

type MockCatalog struct {
	entity.BaseEntity
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "is_active", "version", "attributes",
		"created_at", "updated_at", "deleted_at", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	cat := MockCatalog{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			IsActive:  false,
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
			DeletedAt: &now,
		},
		Code: "TEST",
		Name: "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, false, m["is_active"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, &now, m["deleted_at"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &MockCatalog{Code: "PTR"}
	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}
