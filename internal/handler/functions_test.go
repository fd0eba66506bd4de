package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestDeployComposesSafeStatement(t *testing.T) {
	t.Parallel()

	store := &fakeCatalog{}
	h := NewFunctionHandler(store)

	body := `{"name":"add_one","args":"n integer","returnType":"integer","language":"sql","definition":"SELECT n + 1"}`
	rec := postJSON(t, h.Deploy, "/functions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if len(store.executedSQL) != 1 {
		t.Fatalf("executed %d statements, want 1", len(store.executedSQL))
	}
	stmt := store.executedSQL[0]
	if !strings.HasPrefix(stmt, `CREATE OR REPLACE FUNCTION "add_one"(n integer)`) {
		t.Errorf("statement = %q, want quoted CREATE OR REPLACE FUNCTION", stmt)
	}
}

func TestDeployRejectsBadDescriptor(t *testing.T) {
	t.Parallel()

	store := &fakeCatalog{}
	h := NewFunctionHandler(store)

	cases := []string{
		`{"name":"f; DROP TABLE x","returnType":"int","language":"sql","definition":"SELECT 1"}`,
		`{"name":"f","returnType":"int","language":"sql; --","definition":"SELECT 1"}`,
		`{"name":"f","returnType":"int","language":"sql"}`,
		`{}`,
	}
	for _, body := range cases {
		if rec := postJSON(t, h.Deploy, "/functions", body); rec.Code != http.StatusBadRequest {
			t.Errorf("Deploy(%s) status = %d, want 400", body, rec.Code)
		}
	}
	if len(store.executedSQL) != 0 {
		t.Errorf("bad descriptors reached the store: %v", store.executedSQL)
	}
}

func TestDeployBodyCannotEscapeDelimiters(t *testing.T) {
	t.Parallel()

	store := &fakeCatalog{}
	h := NewFunctionHandler(store)

	// A body that embeds the default delimiter must not terminate the
	// quoted region early.
	body := `{"name":"f","args":"","returnType":"text","language":"sql","definition":"SELECT '$fn$; DROP TABLE users; --'"}`
	rec := postJSON(t, h.Deploy, "/functions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	stmt := store.executedSQL[0]
	tag := "$fn0$"
	first := strings.Index(stmt, tag)
	last := strings.LastIndex(stmt, tag)
	if first < 0 || first == last {
		t.Fatalf("statement lacks a collision-free delimiter pair: %q", stmt)
	}
	inner := stmt[first+len(tag) : last]
	if !strings.Contains(inner, "DROP TABLE users") {
		t.Errorf("body text leaked outside the delimited region: %q", stmt)
	}
}
