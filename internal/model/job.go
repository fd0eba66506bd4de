package model

// Job kinds the worker knows how to execute.  The set is closed: a message
// with any other kind is dead-lettered instead of being acked as an empty
// success, so operator typos surface instead of vanishing.
const (
	JobBackupDatabase = "backup_database"
	JobReindexTable   = "reindex_table"
)

// Job statuses.  A job is terminal once completed or failed; there is no
// automatic retry (at-most-once execution).
const (
	JobQueued    = "queued"
	JobActive    = "active"
	JobCompleted = "completed"
	JobFailed    = "failed"
)
