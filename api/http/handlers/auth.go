package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/security/jwt"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	sessions   auth.SessionUseCase
	workspaces *Workspaces
	cookie     CookieConfig
}

func NewAuthHandler(sessions auth.SessionUseCase, workspaces *Workspaces, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{sessions: sessions, workspaces: workspaces, cookie: cookie}
}

// loginRequest.Portal: jobseeker | employer | interviewer | admin; jobseeker when empty.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Portal   string `json:"portal"`
}

type loginResponse struct {
	User      auth.User `json:"user"`
	Redirect  string    `json:"redirect"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles login on one of the role portals.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	portal := auth.RoleJobseeker
	if p := strings.TrimSpace(req.Portal); p != "" {
		r, ok := auth.ParseRole(strings.ToLower(p))
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "unknown portal")
		}
		portal = r
	}

	sess, landing, err := h.sessions.Login(c.UserContext(), req.Email, req.Password, portal)
	if err != nil {
		return presenter.Fail(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return presenter.JSON(c, http.StatusOK, loginResponse{User: sess.User, Redirect: landing, ExpiresAt: sess.ExpiresAt})
}

// Logout destroys the session and its workspace.
// @Summary Logout
// @Tags    auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, ok := jwt.SessionFrom(c); ok {
		if err := h.sessions.Logout(c.UserContext(), sess.ID); err != nil {
			return presenter.Fail(c, err)
		}
	}
	c.ClearCookie(h.cookie.Name)
	return presenter.JSON(c, http.StatusOK, fiber.Map{"redirect": auth.LoginPath})
}

type meResponse struct {
	User    auth.User        `json:"user"`
	Balance credits.Snapshot `json:"balance"`
	Landing string           `json:"landing"`
}

// Me is the dashboard entry: fresh identity and balance for any role.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ws, user, err := h.workspaces.Enter(c, auth.AnyRole)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, meResponse{
		User:    user,
		Balance: ws.Ledger.Snapshot(),
		Landing: auth.LandingPath(user.Role),
	})
}
