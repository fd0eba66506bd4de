package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/utils"
)

// CatalogStore is the metadata surface the catalog endpoints need.  It is
// implemented by repository.CatalogRepo.
type CatalogStore interface {
	ListTables(ctx context.Context) ([]model.Table, error)
	ListColumns(ctx context.Context, schema, table string) ([]model.Column, error)
	SampleRows(ctx context.Context, schema, table string) ([]map[string]any, error)
	ExecuteSQL(ctx context.Context, query string) (model.SQLResult, error)
	ListFunctions(ctx context.Context) ([]model.Function, error)
	ListPolicies(ctx context.Context) ([]model.Policy, error)
}

// CatalogHandler serves the table/column/data listing endpoints.
type CatalogHandler struct {
	Catalog CatalogStore
}

func NewCatalogHandler(catalog CatalogStore) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// catalogTimeout bounds the metadata queries; the per-table counts in
// ListTables make this the slowest read path in the service.
const catalogTimeout = 30 * time.Second

// Tables lists every non-system table with row counts and RLS state.
func (h *CatalogHandler) Tables(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), catalogTimeout)
	defer cancel()

	tables, err := h.Catalog.ListTables(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
	}
	return c.JSON(http.StatusOK, tables)
}

// Columns lists the columns of one table.  An unknown table renders as an
// empty list.
func (h *CatalogHandler) Columns(c echo.Context) error {
	schema, table := c.Param("schema"), c.Param("table")
	if !utils.ValidIdent(schema) || !utils.ValidIdent(table) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid name"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), catalogTimeout)
	defer cancel()

	cols, err := h.Catalog.ListColumns(ctx, schema, table)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list columns failed"})
	}
	return c.JSON(http.StatusOK, cols)
}

// Data returns a bounded sample of one table's rows.  The identifiers end
// up interpolated into SQL, so they are validated before the repository ever
// sees them.
func (h *CatalogHandler) Data(c echo.Context) error {
	schema, table := c.Param("schema"), c.Param("table")
	if !utils.ValidIdent(schema) || !utils.ValidIdent(table) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid name"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), catalogTimeout)
	defer cancel()

	rows, err := h.Catalog.SampleRows(ctx, schema, table)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "fetch rows failed"})
	}
	return c.JSON(http.StatusOK, rows)
}
