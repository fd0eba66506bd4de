package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/utils"
)

// FunctionHandler lists stored functions and redeploys edited ones.
type FunctionHandler struct {
	Catalog CatalogStore
}

func NewFunctionHandler(catalog CatalogStore) *FunctionHandler {
	return &FunctionHandler{Catalog: catalog}
}

// List returns all user-defined functions with source bodies.
func (h *FunctionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), catalogTimeout)
	defer cancel()

	fns, err := h.Catalog.ListFunctions(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list functions failed"})
	}
	return c.JSON(http.StatusOK, fns)
}

type deployReq struct {
	Name       string `json:"name"`
	Args       string `json:"args"`
	ReturnType string `json:"returnType"`
	Language   string `json:"language"`
	Definition string `json:"definition"`
}

// Deploy rebuilds CREATE OR REPLACE FUNCTION from a descriptor plus an
// edited body and executes it.  The statement is composed server-side with
// delimiter management, so the body cannot break out of its quoted region
// the way a hand-concatenated statement through the console could.
func (h *FunctionHandler) Deploy(c echo.Context) error {
	var req deployReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.ReturnType == "" || req.Language == "" || req.Definition == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, returnType, language and definition required"})
	}

	stmt, err := utils.BuildCreateFunction(req.Name, req.Args, req.ReturnType, req.Language, req.Definition)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Minute)
	defer cancel()

	if _, err := h.Catalog.ExecuteSQL(ctx, stmt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": pgErr.Message})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deploy failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deployed", "name": req.Name})
}
