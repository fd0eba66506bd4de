// Package queue defines the job transport shared by the gateway (producer)
// and the worker binary (consumer).  The two processes share nothing but
// these message shapes and the broker itself.
package queue

import "encoding/json"

// Queue names on the broker.  Jobs flow through JobsQueue; the worker
// reports outcomes on ResultsQueue and parks undecodable or unknown-kind
// messages on DeadQueue instead of acking them as successes.
const (
	JobsQueue    = "database-ops"
	ResultsQueue = "database-ops.results"
	DeadQueue    = "database-ops.dead"
)

// Job is the wire form of one unit of deferred work: an id, a kind ("name"
// on the wire) and a kind-specific payload.
type Job struct {
	ID      string          `json:"id"`
	Kind    string          `json:"name"`
	Payload json.RawMessage `json:"data,omitempty"`
}

// ReindexPayload is the payload of a reindex_table job.
type ReindexPayload struct {
	Table string `json:"table"`
}

// BackupResult is the result of a completed backup_database job.
type BackupResult struct {
	Size      string `json:"size"`
	Timestamp string `json:"timestamp"`
}

// Result reports a job's terminal state back through the transport.  Exactly
// one of Result (on completed) or Error (on failed) is populated.
type Result struct {
	JobID      string `json:"job_id"`
	Kind       string `json:"name"`
	Status     string `json:"status"` // "completed" or "failed"
	Result     any    `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	FinishedAt string `json:"finished_at"`
}
