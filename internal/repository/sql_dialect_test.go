package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "title", " excerpt ", "")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(excerpt) LIKE ? ESCAPE '\')`
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", "name", "email")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "name ILIKE ?") || !strings.Contains(condition, "email ILIKE ?") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}
}

func TestBuildLikeConditionEmpty(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite")
	if condition != "" || argCount != 0 {
		t.Fatalf("empty columns should produce empty condition, got %q/%d", condition, argCount)
	}
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	if got := likePattern(nil, " 50%_Off "); got != `%50\%\_off%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%x%", 3)
	if len(args) != 3 {
		t.Fatalf("args length want 3 got %d", len(args))
	}
	for _, arg := range args {
		if arg != "%x%" {
			t.Fatalf("unexpected arg: %v", arg)
		}
	}
}

func TestDayExprByDialect(t *testing.T) {
	if got := dayExprByDialect("sqlite", "created_at"); got != "strftime('%Y-%m-%d', created_at)" {
		t.Fatalf("sqlite day expr mismatch: %s", got)
	}
	if got := dayExprByDialect("postgres", "created_at"); got != "TO_CHAR(created_at, 'YYYY-MM-DD')" {
		t.Fatalf("postgres day expr mismatch: %s", got)
	}
}
