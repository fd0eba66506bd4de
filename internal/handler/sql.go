package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// SQLHandler is the raw console: client SQL goes to the engine verbatim.
// The route is gated by JWTAuth plus RequireRole(service_role); no further
// shaping happens here.
type SQLHandler struct {
	Catalog CatalogStore
}

func NewSQLHandler(catalog CatalogStore) *SQLHandler {
	return &SQLHandler{Catalog: catalog}
}

type sqlReq struct {
	Query string `json:"query"`
}

// Execute runs one ad-hoc statement.  A statement the engine rejects is a
// client error, and the engine's own message is passed through so the
// dashboard can show it in the console; transport-level failures stay 500.
func (h *SQLHandler) Execute(c echo.Context) error {
	var req sqlReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Minute)
	defer cancel()

	res, err := h.Catalog.ExecuteSQL(ctx, req.Query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": pgErr.Message})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, res)
}
