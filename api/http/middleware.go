package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/artem13815/hr/portal/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestContext assigns a request id, opens a server span and logs the request.
// The id travels in the user context down to the backend calls.
func RequestContext() fiber.Handler {
	tracer := otel.Tracer("github.com/artem13815/hr/portal/api/http")
	return func(c *fiber.Ctx) error {
		started := time.Now()
		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)

		ctx, span := tracer.Start(logger.WithRequestID(c.UserContext(), rid), c.Method()+" "+c.Path())
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			// ошибки fiber (404 маршрута и т.п.) превращаются в ответ здесь, чтобы статус попал в лог
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.request.method", c.Method()),
			attribute.String("url.path", c.Path()),
			attribute.Int("http.response.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "server error")
		}
		logger.HTTPLog(c.Method(), c.Path(), status, time.Since(started), rid)
		return nil
	}
}
