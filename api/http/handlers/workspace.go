package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/portal"
	"github.com/artem13815/hr/portal/pkg/security/jwt"
	"github.com/artem13815/hr/portal/pkg/validation"
)

// Workspaces resolves the workspace of the request's session.
type Workspaces struct {
	registry *portal.Registry
	sessions auth.SessionUseCase
}

func NewWorkspaces(registry *portal.Registry, sessions auth.SessionUseCase) *Workspaces {
	return &Workspaces{registry: registry, sessions: sessions}
}

// Enter is the page entry: auth/me and balance are reloaded and the role is checked.
// A token the backend no longer accepts ends the portal session too.
func (w *Workspaces) Enter(c *fiber.Ctx, access auth.Access) (*portal.Workspace, auth.User, error) {
	sess, ok := jwt.SessionFrom(c)
	if !ok {
		return nil, auth.User{}, auth.ErrUnauthenticated
	}
	ws := w.registry.For(sess)
	user, err := ws.Guard.Enter(c.UserContext(), access)
	if errors.Is(err, auth.ErrUnauthenticated) {
		if lerr := w.sessions.Logout(c.UserContext(), sess.ID); lerr != nil {
			logger.CtxWarn(c.UserContext(), "logout after rejected token failed", "error", lerr)
		}
	}
	if err != nil {
		return nil, user, err
	}
	return ws, user, nil
}

// Act is used by actions inside a page; the role comes from the session, no extra calls.
func (w *Workspaces) Act(c *fiber.Ctx, access auth.Access) (*portal.Workspace, error) {
	sess, ok := jwt.SessionFrom(c)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}
	if !access.Allows(sess.User.Role) {
		msg := access.Denied
		if msg == "" {
			msg = "You do not have access to this page"
		}
		return nil, &auth.WrongRoleError{Role: sess.User.Role, Message: msg}
	}
	return w.registry.For(sess), nil
}

// fieldError reports a malformed request parameter as a form error.
func fieldError(field, msg string) error {
	return &validation.ValidationError{Fields: map[string]string{field: msg}}
}
