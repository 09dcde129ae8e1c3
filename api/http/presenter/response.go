package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/contacts"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/interview"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/profile"
	"github.com/artem13815/hr/portal/pkg/resume"
	"github.com/artem13815/hr/portal/pkg/talent"
	"github.com/artem13815/hr/portal/pkg/validation"
	"github.com/artem13815/hr/portal/pkg/vacancy"
)

const GenericFailure = "Something went wrong. Please try again."

type ErrorResponse struct {
	Message  string            `json:"message"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Redirect answers with a message and the page the client should go to.
func Redirect(c *fiber.Ctx, status int, message, to string) error {
	return JSON(c, status, ErrorResponse{Message: message, Redirect: to})
}

// Fail переводит ошибку сценария в HTTP-ответ.
func Fail(c *fiber.Ctx, err error) error {
	status, body := Classify(err)
	if status >= http.StatusInternalServerError {
		logger.CtxWithError(c.UserContext(), "request failed", err, "path", c.Path())
	} else {
		logger.CtxWarn(c.UserContext(), "request rejected", "path", c.Path(), "status", status, "error", err)
	}
	return JSON(c, status, body)
}

// Classify maps an error to the status and body the client sees.
func Classify(err error) (int, ErrorResponse) {
	var (
		wrongRole  *auth.WrongRoleError
		loginErr   auth.LoginError
		invalid    *validation.ValidationError
		ratingErr  *interview.RatingError
		transition *interview.TransitionError
		rejected   resume.ErrRejected
		postingErr vacancy.ErrValidation
		noCredits  *contacts.InsufficientCreditsError
		apiErr     *apiclient.Error
	)

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Message: "Session expired. Please log in again.", Redirect: auth.LoginPath}
	case errors.As(err, &wrongRole):
		return http.StatusForbidden, ErrorResponse{Message: wrongRole.Message, Redirect: auth.DashboardPath}
	case errors.As(err, &loginErr):
		return http.StatusUnauthorized, ErrorResponse{Message: string(loginErr)}
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: invalid.First(), Fields: invalid.Fields}
	case errors.As(err, &ratingErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: ratingErr.Error()}
	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: string(rejected)}
	case errors.As(err, &postingErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: string(postingErr)}
	case errors.Is(err, contacts.ErrMissingJobseeker):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: "Jobseeker id is required"}
	case errors.As(err, &noCredits):
		return http.StatusPaymentRequired, ErrorResponse{Message: noCredits.Error()}
	case errors.As(err, &transition):
		return http.StatusConflict, ErrorResponse{Message: transition.Error()}
	case errors.Is(err, inflight.ErrInProgress):
		return http.StatusTooManyRequests, ErrorResponse{Message: "Request already in progress"}
	case isStale(err):
		return http.StatusConflict, ErrorResponse{Message: "This page has changed. Please reload."}
	case errors.Is(err, profile.ErrNotLoaded), errors.Is(err, profile.ErrNotEditing):
		return http.StatusConflict, ErrorResponse{Message: err.Error()}
	case errors.Is(err, profile.ErrNoSuchItem), errors.Is(err, interview.ErrNotFound), errors.Is(err, credits.ErrUnknownPackage):
		return http.StatusNotFound, ErrorResponse{Message: err.Error()}
	case errors.Is(err, credits.ErrPaymentsUnavailable):
		return http.StatusNotImplemented, ErrorResponse{Message: err.Error()}
	case errors.As(err, &apiErr):
		return classifyAPI(apiErr)
	}
	return http.StatusInternalServerError, ErrorResponse{Message: GenericFailure}
}

func classifyAPI(e *apiclient.Error) (int, ErrorResponse) {
	switch e.Kind {
	case apiclient.KindUnauthorized:
		return http.StatusUnauthorized, ErrorResponse{Message: "Session expired. Please log in again.", Redirect: auth.LoginPath}
	case apiclient.KindTimeout, apiclient.KindNetwork, apiclient.KindServer:
		return http.StatusBadGateway, ErrorResponse{Message: GenericFailure}
	}
	status := e.Status
	if status < 400 || status >= 500 {
		status = http.StatusBadGateway
	}
	return status, ErrorResponse{Message: apiclient.MessageOf(e, GenericFailure)}
}

func isStale(err error) bool {
	for _, stale := range []error{contacts.ErrStale, interview.ErrStale, talent.ErrStale, profile.ErrStale} {
		if errors.Is(err, stale) {
			return true
		}
	}
	return false
}
