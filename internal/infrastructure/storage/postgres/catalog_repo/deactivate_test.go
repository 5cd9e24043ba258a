package catalog_repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/deactivate"
)

func TestBaseCatalogRepo_HardDelete_SQL(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name"}, func() any { return nil })
	entityID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	// squirrel unwraps driver.Valuer args, so the ID arrives as its string form.
	if len(args) != 1 || fmt.Sprint(args[0]) != entityID.String() {
		t.Errorf("Args mismatch\nwant: [%s]\ngot:  %v", entityID.String(), args)
	}
}

func TestBaseCatalogRepo_SoftDeactivate_SQLShape(t *testing.T) {
	// Mirrors the UPDATE built in softDeactivate: the WHERE clause must
	// include is_active = true so repeated commands are no-ops.
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name"}, func() any { return nil })
	entityID := id.New()

	q := repo.Builder().
		Update(repo.tableName).
		Set("is_active", false).
		Set("deleted_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"is_active": true})

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, fragment := range []string{
		"UPDATE test_table",
		"is_active = $",
		"deleted_at = now()",
		"version = version + 1",
		"WHERE id = $",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("SQL missing fragment %q\ngot: %s", fragment, sql)
		}
	}
}

func TestBaseCatalogRepo_ToggleIsActive_InvalidStrategy(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name"}, func() any { return nil })

	_, err := repo.ToggleIsActive(context.Background(), deactivate.Command{
		ID:       id.New(),
		Strategy: "purge",
	})
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error for unknown strategy, got %v", err)
	}
}

func TestBaseCatalogRepo_SoftDeactivate_UnknownRelation(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name"}, func() any { return nil })
	repo.RegisterRelation("contacts", Relation{ChildTable: "test_contacts", FKColumn: "parent_id"})

	// Unknown relation names must fail before any row is touched; with a nil
	// tx manager the call would panic if it reached the database.
	_, err := repo.ToggleIsActive(context.Background(), deactivate.Command{
		ID:      id.New(),
		Cascade: deactivate.Cascade{Relations: []string{"orders"}},
	})
	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error for unknown relation, got %v", err)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "code", "name"}, func() any { return nil })

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"name", "name ASC", false},
		{"-created_at", "created_at DESC", false},
		{"+code", "code ASC", false},
		{"name; DROP TABLE test_table", "", true},
		{"-", "", true},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOrderBy(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
