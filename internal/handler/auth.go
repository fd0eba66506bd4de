package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/config"
	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/repository"
	"github.com/irondb/gateway/internal/utils"
)

// UserStore is the persistence surface the auth endpoints need.  It is
// implemented by repository.UserRepo; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (model.User, error)
	CreateFederated(ctx context.Context, email, provider string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	TouchLastSignIn(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.PublicUser, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Register creates a password-based user.  The password is bcrypt-hashed in
// the repository; plaintext never reaches storage or logs.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, u.Public())
}

// Login verifies a password credential and mints a token.  The three failure
// modes are distinct on purpose: unknown email (404), a federated user who
// has no password to check (400, points at Google), and a wrong password
// (401).
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if u.Provider != model.ProviderEmail {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please login with " + u.Provider})
	}
	if !utils.VerifyPassword(u.EncryptedPassword, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := h.Users.TouchLastSignIn(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update sign-in failed"})
	}
	token, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{Token: token.Value, User: u.Public()})
}

// ListUsers returns all users, newest first (protected).
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	return c.JSON(http.StatusOK, users)
}
