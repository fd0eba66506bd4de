package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/irondb/gateway/internal/queue"
)

type fakeEnqueuer struct {
	jobs []queue.Job
	err  error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, kind string, payload json.RawMessage) (queue.Job, error) {
	if f.err != nil {
		return queue.Job{}, f.err
	}
	job := queue.Job{ID: "job-1", Kind: kind, Payload: payload}
	f.jobs = append(f.jobs, job)
	return job, nil
}

func TestEnqueueReindex(t *testing.T) {
	t.Parallel()

	q := &fakeEnqueuer{}
	h := NewJobHandler(q)

	rec := postJSON(t, h.Enqueue, "/jobs", `{"kind":"reindex_table","payload":{"table":"orders"}}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body)
	}
	var resp struct {
		ID     string `json:"id"`
		Kind   string `json:"kind"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.ID == "" || resp.Kind != "reindex_table" || resp.Status != "queued" {
		t.Errorf("response = %+v, want id/reindex_table/queued", resp)
	}
	if len(q.jobs) != 1 {
		t.Fatalf("enqueued %d jobs, want 1", len(q.jobs))
	}
}

func TestEnqueueBackup(t *testing.T) {
	t.Parallel()

	q := &fakeEnqueuer{}
	h := NewJobHandler(q)

	if rec := postJSON(t, h.Enqueue, "/jobs", `{"kind":"backup_database"}`); rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
}

func TestEnqueueRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	q := &fakeEnqueuer{}
	h := NewJobHandler(q)

	if rec := postJSON(t, h.Enqueue, "/jobs", `{"kind":"drop_everything"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(q.jobs) != 0 {
		t.Errorf("unknown kind was enqueued: %v", q.jobs)
	}
}

func TestEnqueueRejectsBadReindexPayload(t *testing.T) {
	t.Parallel()

	q := &fakeEnqueuer{}
	h := NewJobHandler(q)

	cases := []string{
		`{"kind":"reindex_table"}`,
		`{"kind":"reindex_table","payload":{}}`,
		`{"kind":"reindex_table","payload":{"table":"orders; DROP TABLE orders"}}`,
		`{"kind":"reindex_table","payload":{"table":"or ders"}}`,
	}
	for _, body := range cases {
		if rec := postJSON(t, h.Enqueue, "/jobs", body); rec.Code != http.StatusBadRequest {
			t.Errorf("Enqueue(%s) status = %d, want 400", body, rec.Code)
		}
	}
	if len(q.jobs) != 0 {
		t.Errorf("bad payloads were enqueued: %v", q.jobs)
	}
}
