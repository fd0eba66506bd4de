package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/utils"
)

// sampleRowLimit caps the page returned by SampleRows.
const sampleRowLimit = 100

// CatalogRepo projects the database's own catalog (tables, columns,
// functions, RLS policies) and runs ad-hoc SQL.  All descriptors are
// recomputed per call; nothing is cached.
type CatalogRepo struct{ DB *pgxpool.Pool }

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo { return &CatalogRepo{DB: db} }

// ListTables returns every non-system table with its RLS state, the
// planner's row estimate and a best-effort exact count.  A failing COUNT(*)
// on one table (locked, permission denied) degrades that table's RowCount to
// 0 instead of failing the whole listing.
func (r *CatalogRepo) ListTables(ctx context.Context) ([]model.Table, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT t.table_schema, t.table_name,
		       pg_class.reltuples::bigint,
		       pg_class.relrowsecurity
		FROM information_schema.tables t
		JOIN pg_class ON pg_class.relname = t.table_name
		JOIN pg_namespace ON pg_namespace.oid = pg_class.relnamespace
		     AND pg_namespace.nspname = t.table_schema
		WHERE t.table_schema NOT IN ('information_schema', 'pg_catalog')
		ORDER BY t.table_schema, t.table_name`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	tables := []model.Table{}
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.Schema, &t.Name, &t.EstimatedRows, &t.RLSEnabled); err != nil {
			return nil, fmt.Errorf("scanning table row: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table rows: %w", err)
	}

	for i := range tables {
		tables[i].RowCount = r.countRows(ctx, tables[i].Schema, tables[i].Name)
	}
	return tables, nil
}

// countRows returns the exact row count of one table, or 0 when the count
// cannot be taken.
func (r *CatalogRepo) countRows(ctx context.Context, schema, table string) int64 {
	rel, err := utils.QuoteQualified(schema, table)
	if err != nil {
		return 0
	}
	var n int64
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM "+rel).Scan(&n); err != nil {
		return 0
	}
	return n
}

// ListColumns returns the columns of one table.  An unknown table yields an
// empty slice, not an error, so the caller can render "no structure".
func (r *CatalogRepo) ListColumns(ctx context.Context, schema, table string) ([]model.Column, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`,
		schema, table)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	cols := []model.Column{}
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.Name, &c.Type, &c.IsNullable, &c.DefaultValue); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// SampleRows returns the first rows of one table, capped at sampleRowLimit.
// Both identifiers are validated and quoted before interpolation; they can
// never be bound as values in this position.
func (r *CatalogRepo) SampleRows(ctx context.Context, schema, table string) ([]map[string]any, error) {
	rel, err := utils.QuoteQualified(schema, table)
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", rel, sampleRowLimit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

// ExecuteSQL passes a client-supplied statement to the engine verbatim and
// returns whatever it reports.  Authorization happens upstream; this is the
// raw console.
func (r *CatalogRepo) ExecuteSQL(ctx context.Context, query string) (model.SQLResult, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return model.SQLResult{}, err
	}
	defer rows.Close()

	out, err := collectRows(rows)
	if err != nil {
		return model.SQLResult{}, err
	}
	tag := rows.CommandTag()
	command := tag.String()
	if i := strings.IndexByte(command, ' '); i > 0 {
		command = command[:i]
	}
	return model.SQLResult{Rows: out, RowCount: tag.RowsAffected(), Command: command}, nil
}

// ListFunctions returns user-defined stored functions with their source.
func (r *CatalogRepo) ListFunctions(ctx context.Context) ([]model.Function, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.proname,
		       pg_get_function_arguments(p.oid),
		       t.typname,
		       l.lanname,
		       p.prosrc
		FROM pg_proc p
		JOIN pg_language l ON p.prolang = l.oid
		JOIN pg_type t ON p.prorettype = t.oid
		JOIN pg_namespace n ON p.pronamespace = n.oid
		WHERE n.nspname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY p.proname`)
	if err != nil {
		return nil, fmt.Errorf("querying functions: %w", err)
	}
	defer rows.Close()

	fns := []model.Function{}
	for rows.Next() {
		var f model.Function
		if err := rows.Scan(&f.Name, &f.Args, &f.ReturnType, &f.Language, &f.Definition); err != nil {
			return nil, fmt.Errorf("scanning function row: %w", err)
		}
		fns = append(fns, f)
	}
	return fns, rows.Err()
}

// ListPolicies returns row-level-security policies for the public and auth
// schemas with the single-letter command code decoded to its verb.
func (r *CatalogRepo) ListPolicies(ctx context.Context) ([]model.Policy, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pol.polname, tab.relname,
		       CASE pol.polcmd
		            WHEN 'r' THEN 'SELECT'
		            WHEN 'a' THEN 'INSERT'
		            WHEN 'w' THEN 'UPDATE'
		            WHEN 'd' THEN 'DELETE'
		            ELSE 'ALL'
		       END,
		       pg_get_expr(pol.polqual, pol.polrelid),
		       pg_get_expr(pol.polwithcheck, pol.polrelid)
		FROM pg_policy pol
		JOIN pg_class tab ON pol.polrelid = tab.oid
		JOIN pg_namespace n ON tab.relnamespace = n.oid
		WHERE n.nspname IN ('public', 'auth')
		ORDER BY tab.relname, pol.polname`)
	if err != nil {
		return nil, fmt.Errorf("querying policies: %w", err)
	}
	defer rows.Close()

	pols := []model.Policy{}
	for rows.Next() {
		var p model.Policy
		if err := rows.Scan(&p.Name, &p.TableName, &p.Command, &p.Using, &p.Check); err != nil {
			return nil, fmt.Errorf("scanning policy row: %w", err)
		}
		pols = append(pols, p)
	}
	return pols, rows.Err()
}

// collectRows drains a result set into one map per row keyed by column name.
func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	out := []map[string]any{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, len(fields))
		for i, fd := range fields {
			v := vals[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			m[fd.Name] = v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
