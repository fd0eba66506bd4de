package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/irondb/gateway/internal/config"
	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/repository"
	"github.com/irondb/gateway/internal/utils"
)

const (
	stateCookie    = "oauth_state"
	userInfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
	exchangeBudget = 10 * time.Second
)

// GoogleHandler implements federated login.  Google verifies the user's
// identity; we only consume the verified email claim.  The browser is
// redirected back to the configured frontend origin carrying the minted
// token — the origin comes from config, never from request input, which
// keeps the redirect target allow-listed.
type GoogleHandler struct {
	Cfg   config.Config
	Users UserStore
	OAuth *oauth2.Config
}

func NewGoogleHandler(cfg config.Config, users UserStore) *GoogleHandler {
	return &GoogleHandler{
		Cfg:   cfg,
		Users: users,
		OAuth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Login starts the consent flow.  A random state nonce is stored in a
// short-lived cookie and checked again on callback.
func (h *GoogleHandler) Login(c echo.Context) error {
	if !h.Cfg.GoogleEnabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login is not configured"})
	}
	state := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusTemporaryRedirect, h.OAuth.AuthCodeURL(state))
}

// Callback finishes the flow: state check, code exchange, profile fetch,
// then user lookup-or-create keyed by the verified email.  Existing users
// get their last_sign_in refreshed; unknown emails become new federated
// users with no password hash.
func (h *GoogleHandler) Callback(c echo.Context) error {
	if !h.Cfg.GoogleEnabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login is not configured"})
	}
	cookie, err := c.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != c.QueryParam("state") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), exchangeBudget)
	defer cancel()

	tok, err := h.OAuth.Exchange(ctx, code)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "code exchange failed"})
	}
	email, err := h.fetchVerifiedEmail(ctx, tok)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "profile fetch failed"})
	}

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		u, err = h.Users.CreateFederated(ctx, email, model.ProviderGoogle)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	default:
		if err := h.Users.TouchLastSignIn(ctx, u.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update sign-in failed"})
		}
	}

	jwtTok, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.Redirect(http.StatusTemporaryRedirect,
		h.Cfg.FrontendOrigin+"?token="+url.QueryEscape(jwtTok.Value))
}

// fetchVerifiedEmail pulls the profile from Google's userinfo endpoint and
// returns the email only when Google marks it verified.
func (h *GoogleHandler) fetchVerifiedEmail(ctx context.Context, tok *oauth2.Token) (string, error) {
	resp, err := h.OAuth.Client(ctx, tok).Get(userInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("userinfo: unexpected status " + resp.Status)
	}

	var profile struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", err
	}
	if profile.Email == "" || !profile.VerifiedEmail {
		return "", errors.New("userinfo: no verified email claim")
	}
	return profile.Email, nil
}
