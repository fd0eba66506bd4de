package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestValidIdent(t *testing.T) {
	t.Parallel()

	valid := []string{"users", "Users_2", "a", "_private", "order_items_v2"}
	for _, name := range valid {
		if !ValidIdent(name) {
			t.Errorf("ValidIdent(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		"users; DROP TABLE users",
		`us"ers`,
		"us'ers",
		"user s",
		"users\t",
		"users--",
		"public.users",
		"таблица",
	}
	for _, name := range invalid {
		if ValidIdent(name) {
			t.Errorf("ValidIdent(%q) = true, want false", name)
		}
	}
}

func TestQuoteQualified(t *testing.T) {
	t.Parallel()

	got, err := QuoteQualified("public", "orders")
	if err != nil {
		t.Fatalf("QuoteQualified() error: %v", err)
	}
	if got != `"public"."orders"` {
		t.Errorf("QuoteQualified() = %q, want %q", got, `"public"."orders"`)
	}

	if _, err := QuoteQualified("public", "orders; --"); !errors.Is(err, ErrBadIdent) {
		t.Errorf("QuoteQualified() error = %v, want ErrBadIdent", err)
	}
	if _, err := QuoteQualified("pub lic", "orders"); !errors.Is(err, ErrBadIdent) {
		t.Errorf("QuoteQualified() error = %v, want ErrBadIdent", err)
	}
}

func TestBuildCreateFunction(t *testing.T) {
	t.Parallel()

	t.Run("basic", func(t *testing.T) {
		t.Parallel()
		stmt, err := BuildCreateFunction("add_one", "n integer", "integer", "sql", "SELECT n + 1")
		if err != nil {
			t.Fatalf("BuildCreateFunction() error: %v", err)
		}
		if !strings.HasPrefix(stmt, `CREATE OR REPLACE FUNCTION "add_one"(n integer) RETURNS integer LANGUAGE sql AS $fn$`) {
			t.Errorf("unexpected statement prefix: %q", stmt)
		}
		if !strings.HasSuffix(stmt, "$fn$") {
			t.Errorf("statement not closed with delimiter: %q", stmt)
		}
	})

	t.Run("body containing the default delimiter", func(t *testing.T) {
		t.Parallel()
		body := "SELECT '$fn$ sneaky $fn$'"
		stmt, err := BuildCreateFunction("f", "", "text", "sql", body)
		if err != nil {
			t.Fatalf("BuildCreateFunction() error: %v", err)
		}
		// The chosen tag must not occur inside the body region.
		if strings.Count(stmt, "$fn0$") != 2 {
			t.Errorf("expected collision-free tag $fn0$ used twice, got %q", stmt)
		}
	})

	t.Run("nested collision", func(t *testing.T) {
		t.Parallel()
		body := "$fn$ and $fn0$ and $fn1$"
		stmt, err := BuildCreateFunction("f", "", "text", "sql", body)
		if err != nil {
			t.Fatalf("BuildCreateFunction() error: %v", err)
		}
		if strings.Count(stmt, "$fn2$") != 2 {
			t.Errorf("expected tag $fn2$ used twice, got %q", stmt)
		}
	})

	t.Run("bad function name", func(t *testing.T) {
		t.Parallel()
		if _, err := BuildCreateFunction("f; DROP TABLE x", "", "text", "sql", "SELECT 1"); !errors.Is(err, ErrBadIdent) {
			t.Errorf("error = %v, want ErrBadIdent", err)
		}
	})

	t.Run("bad language", func(t *testing.T) {
		t.Parallel()
		if _, err := BuildCreateFunction("f", "", "text", "sql; SELECT", "SELECT 1"); !errors.Is(err, ErrBadIdent) {
			t.Errorf("error = %v, want ErrBadIdent", err)
		}
	})

	t.Run("bad argument list", func(t *testing.T) {
		t.Parallel()
		if _, err := BuildCreateFunction("f", "n integer) AS $$", "text", "sql", "SELECT 1"); !errors.Is(err, ErrBadIdent) {
			t.Errorf("error = %v, want ErrBadIdent", err)
		}
	})
}
