package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/logger"
)

// SessionLocal is the c.Locals key holding the resolved auth.Session.
const SessionLocal = "session"

// NewSessionMiddleware resolves the session cookie (or a "Session <id>" Authorization
// header for non-browser clients) and stores the session in c.Locals("session").
func NewSessionMiddleware(sessions auth.SessionUseCase, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)
		if id == "" {
			if h := c.Get("Authorization"); h != "" {
				parts := strings.SplitN(h, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Session") {
					id = strings.TrimSpace(parts[1])
				}
			}
		}
		if id == "" {
			return unauthorized(c, "Please log in to continue")
		}

		sess, err := sessions.Resolve(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				c.ClearCookie(cookieName)
				return unauthorized(c, "Session expired. Please log in again.")
			}
			logger.CtxWithError(c.UserContext(), "session lookup failed", err)
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{"message": "Something went wrong. Please try again."})
		}

		c.Locals(SessionLocal, sess)
		c.Locals("userId", sess.User.ID)
		c.SetUserContext(logger.WithUserID(c.UserContext(), sess.User.ID))
		return c.Next()
	}
}

// SessionFrom returns the session stored by the middleware.
func SessionFrom(c *fiber.Ctx) (auth.Session, bool) {
	sess, ok := c.Locals(SessionLocal).(auth.Session)
	return sess, ok
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": msg, "redirect": auth.LoginPath})
}
