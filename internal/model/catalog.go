package model

// Catalog descriptors are read-only projections of Postgres metadata.  They
// are recomputed on every request and never cached, so a listing always
// reflects the live catalog.

// Table describes one user table.
//
// EstimatedRows comes from pg_class.reltuples and may be stale; RowCount is
// an on-demand COUNT(*) that degrades to 0 when the count query fails (for
// example on a locked or permission-restricted table).
type Table struct {
	Schema        string `json:"schema"`
	Name          string `json:"name"`
	EstimatedRows int64  `json:"estimated_rows"`
	RowCount      int64  `json:"rowCount"`
	RLSEnabled    bool   `json:"rlsEnabled"`
}

// Column describes one column of a table.
type Column struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	IsNullable   bool    `json:"isNullable"`
	DefaultValue *string `json:"defaultValue"`
}

// Function describes a stored function: its signature plus the source body,
// which the dashboard shows in its editor and may send back for redeploy.
type Function struct {
	Name       string `json:"name"`
	Args       string `json:"args"`
	ReturnType string `json:"returnType"`
	Language   string `json:"language"`
	Definition string `json:"definition"`
}

// Policy describes one row-level-security policy, grouped by table on the
// dashboard side.  Command is the decoded verb (SELECT/INSERT/UPDATE/DELETE
// or ALL); Using and Check are the policy's predicate expressions as text.
type Policy struct {
	Name      string  `json:"name"`
	TableName string  `json:"table_name"`
	Command   string  `json:"command"`
	Using     *string `json:"using"`
	Check     *string `json:"check"`
}

// SQLResult is the verbatim outcome of an ad-hoc statement: the rows (one
// map per row, keyed by column name), the engine-reported row count and the
// command tag ("SELECT", "UPDATE", ...).
type SQLResult struct {
	Rows     []map[string]any `json:"rows"`
	RowCount int64            `json:"rowCount"`
	Command  string           `json:"command"`
}
