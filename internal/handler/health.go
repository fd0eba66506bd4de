package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness plus database reachability: a gateway that
// cannot reach its database is not healthy even if the process is up.
type HealthHandler struct {
	DB *pgxpool.Pool
}

func NewHealthHandler(db *pgxpool.Pool) *HealthHandler { return &HealthHandler{DB: db} }

// Check runs a trivial query through the pool and reports the result.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var now time.Time
	if err := h.DB.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "unhealthy", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy", "time": now})
}
