package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/artem13815/hr/portal/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Session    fiber.Handler
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Talent     *handlers.TalentHandler
	Interviews *handlers.InterviewHandler
	Credits    *handlers.CreditsHandler
	Profile    *handlers.ProfileHandler
	Vacancy    *handlers.VacancyHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	app.Use(recover.New())
	app.Use(RequestContext())

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", h.Session, h.Auth.Logout)
	a.Get("/me", h.Session, h.Auth.Me)

	// Everything below needs a portal session
	t := v1.Group("/talent", h.Session)
	t.Get("/", h.Talent.Search)
	t.Post("/:id/reveal", h.Talent.Reveal)

	iv := v1.Group("/interviews", h.Session)
	iv.Get("/", h.Interviews.List)
	iv.Post("/:id/accept", h.Interviews.Accept)
	iv.Get("/:id/rating", h.Interviews.RatingForm)
	iv.Post("/:id/rating", h.Interviews.SubmitRating)

	cr := v1.Group("/credits", h.Session)
	cr.Get("/", h.Credits.Page)
	cr.Post("/purchase", h.Credits.Purchase)

	adm := v1.Group("/admin", h.Session)
	adm.Get("/credits/settings", h.Credits.Settings)
	adm.Put("/credits/settings", h.Credits.SaveSettings)

	pr := v1.Group("/profile", h.Session)
	pr.Get("/", h.Profile.Get)
	pr.Post("/", h.Profile.Save)
	pr.Post("/edit", h.Profile.Edit)
	pr.Post("/cancel", h.Profile.Cancel)
	pr.Put("/draft", h.Profile.SetDraft)
	pr.Post("/skills", h.Profile.AddSkill)
	pr.Post("/experience", h.Profile.AddExperience)
	pr.Post("/education", h.Profile.AddEducation)
	pr.Post("/resume", h.Profile.UploadResume)
	pr.Delete("/:list/:index", h.Profile.RemoveItem)

	j := v1.Group("/jobs", h.Session)
	j.Get("/new", h.Vacancy.New)
	j.Post("/draft", h.Vacancy.Edit)
	j.Post("/", h.Vacancy.Create)
}
