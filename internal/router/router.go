package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/handler"
	"github.com/irondb/gateway/internal/middleware"
	"github.com/irondb/gateway/internal/model"
)

// Handlers collects every handler the router wires up.  main constructs the
// set once and hands it over; the router owns the middleware ordering.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Google    *handler.GoogleHandler
	Catalog   *handler.CatalogHandler
	SQL       *handler.SQLHandler
	Functions *handler.FunctionHandler
	Policies  *handler.PolicyHandler
	Jobs      *handler.JobHandler
}

// Register wires all routes onto the Echo instance.  Three tiers:
//
//   - public: health and the credential/federation endpoints.  The rate
//     limiter (may be a no-op) guards register and login.
//   - protected: everything else, behind JWTAuth.
//   - privileged: the raw SQL console, function redeploy and job dispatch
//     additionally require the service role, since all three can issue DDL.
func Register(e *echo.Echo, h Handlers, jwtSecret string, limiter echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Check)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register, limiter)
	auth.POST("/login", h.Auth.Login, limiter)
	auth.GET("/google", h.Google.Login)
	auth.GET("/google/callback", h.Google.Callback)

	protected := e.Group("", middleware.JWTAuth(jwtSecret))
	protected.GET("/auth/users", h.Auth.ListUsers)
	protected.GET("/tables", h.Catalog.Tables)
	protected.GET("/tables/:schema/:table/columns", h.Catalog.Columns)
	protected.GET("/tables/:schema/:table/data", h.Catalog.Data)
	protected.GET("/functions", h.Functions.List)
	protected.GET("/policies", h.Policies.List)

	privileged := protected.Group("", middleware.RequireRole(model.RoleService))
	privileged.POST("/sql", h.SQL.Execute)
	privileged.POST("/functions", h.Functions.Deploy)
	privileged.POST("/jobs", h.Jobs.Enqueue)
}
