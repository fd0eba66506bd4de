package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/irondb/gateway/internal/utils"
)

type fakeExecer struct {
	statements []string
	err        error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	return pgconn.NewCommandTag("REINDEX"), f.err
}

func TestExecuteReindexTable(t *testing.T) {
	t.Parallel()

	db := &fakeExecer{}
	w := NewWorker(db, time.Minute)

	res, err := w.Execute(context.Background(), Job{
		ID:      "j1",
		Kind:    "reindex_table",
		Payload: json.RawMessage(`{"table":"orders"}`),
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	got, ok := res.(map[string]string)
	if !ok || got["status"] != "complete" {
		t.Errorf("result = %v, want {status: complete}", res)
	}
	if len(db.statements) != 1 || db.statements[0] != `REINDEX TABLE "orders"` {
		t.Errorf("statements = %v, want a single quoted REINDEX", db.statements)
	}
}

func TestExecuteReindexValidatesIdentifier(t *testing.T) {
	t.Parallel()

	db := &fakeExecer{}
	w := NewWorker(db, time.Minute)

	bad := []string{
		`{"table":"orders; DROP TABLE orders"}`,
		`{"table":"or ders"}`,
		`{"table":""}`,
	}
	for _, payload := range bad {
		_, err := w.Execute(context.Background(), Job{Kind: "reindex_table", Payload: json.RawMessage(payload)})
		if !errors.Is(err, utils.ErrBadIdent) {
			t.Errorf("Execute(%s) error = %v, want ErrBadIdent", payload, err)
		}
	}
	if len(db.statements) != 0 {
		t.Errorf("unsafe identifiers reached the database: %v", db.statements)
	}
}

func TestExecuteUnknownKind(t *testing.T) {
	t.Parallel()

	w := NewWorker(&fakeExecer{}, time.Minute)

	_, err := w.Execute(context.Background(), Job{ID: "j2", Kind: "shrink_disk"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Execute() error = %v, want ErrUnknownKind", err)
	}
}

func TestExecuteBackupRespectsCancellation(t *testing.T) {
	t.Parallel()

	w := NewWorker(&fakeExecer{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Execute(ctx, Job{ID: "j3", Kind: "backup_database"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecuteReindexSurfacesEngineError(t *testing.T) {
	t.Parallel()

	db := &fakeExecer{err: errors.New(`relation "orders" does not exist`)}
	w := NewWorker(db, time.Minute)

	_, err := w.Execute(context.Background(), Job{Kind: "reindex_table", Payload: json.RawMessage(`{"table":"orders"}`)})
	if err == nil {
		t.Fatal("Execute() succeeded, want the engine error")
	}
}
