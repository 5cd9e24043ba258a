package catalog_repo

import (
	"testing"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/filter"
)

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "col1"}, func() any { return nil })

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Equal",
			item:     filter.Item{Field: "col1", Operator: filter.Equal, Value: 10},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 = $1",
			wantArgs: []any{10},
		},
		{
			name:     "NotEqual",
			item:     filter.Item{Field: "col1", Operator: filter.NotEqual, Value: 5},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 <> $1",
			wantArgs: []any{5},
		},
		{
			name:     "LessOrEqual",
			item:     filter.Item{Field: "col1", Operator: filter.LessOrEqual, Value: 5},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 <= $1",
			wantArgs: []any{5},
		},
		{
			name:     "GreaterOrEqual",
			item:     filter.Item{Field: "col1", Operator: filter.GreaterOrEqual, Value: 5},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 >= $1",
			wantArgs: []any{5},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "col1", Operator: filter.Contains, Value: "abc"},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 ILIKE $1",
			wantArgs: []any{"%abc%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseQ := repo.baseSelect()
			q, err := repo.applyAdvancedFilters(baseQ, []filter.Item{tt.item})
			if err != nil {
				t.Fatalf("applyAdvancedFilters failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			if args[0] != tt.wantArgs[0] {
				t.Errorf("Args mismatch\nwant: %v\ngot:  %v", tt.wantArgs[0], args[0])
			}
		})
	}
}

func TestApplyAdvancedFilters_UnknownColumn(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "col1"}, func() any { return nil })

	_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
		{Field: "password; DROP TABLE users", Operator: filter.Equal, Value: 1},
	})
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error for non-whitelisted column, got %v", err)
	}
}
