package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PolicyHandler serves the RLS policy listing.
type PolicyHandler struct {
	Catalog CatalogStore
}

func NewPolicyHandler(catalog CatalogStore) *PolicyHandler {
	return &PolicyHandler{Catalog: catalog}
}

// List returns all row-level-security policies with decoded command verbs
// and rendered predicate expressions.
func (h *PolicyHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), catalogTimeout)
	defer cancel()

	pols, err := h.Catalog.ListPolicies(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list policies failed"})
	}
	return c.JSON(http.StatusOK, pols)
}
