package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/logger"
)

type CreditsHandler struct {
	workspaces *Workspaces
}

func NewCreditsHandler(workspaces *Workspaces) *CreditsHandler {
	return &CreditsHandler{workspaces: workspaces}
}

type creditsPage struct {
	Balance  credits.Snapshot  `json:"balance"`
	Costs    credits.CostTable `json:"costs"`
	Packages []credits.Package `json:"packages"`
}

// Page is the employer credits page: balance, prices and the package catalog.
// @Summary Employer credits
// @Tags    credits
// @Produce json
// @Success 200 {object} creditsPage
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /credits [get]
func (h *CreditsHandler) Page(c *fiber.Ctx) error {
	ws, _, err := h.workspaces.Enter(c, auth.EmployerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	table, err := ws.Costs.Load(c.UserContext())
	if err != nil {
		logger.CtxWarn(c.UserContext(), "credit settings unavailable, using defaults", "error", err)
	}
	return presenter.JSON(c, http.StatusOK, creditsPage{
		Balance:  ws.Ledger.Snapshot(),
		Costs:    table,
		Packages: credits.Packages(),
	})
}

type purchaseRequest struct {
	PackageID string `json:"package_id"`
}

// Purchase is a placeholder until payments are integrated.
// @Summary Buy a credit package
// @Tags    credits
// @Accept  json
// @Produce json
// @Param   input body purchaseRequest true "package"
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 501 {object} presenter.ErrorResponse
// @Router  /credits/purchase [post]
func (h *CreditsHandler) Purchase(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if _, err := h.workspaces.Act(c, auth.EmployerOnly); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.Fail(c, credits.Purchase(req.PackageID))
}

type settingsPage struct {
	Settings credits.Settings `json:"settings"`
	Stats    credits.Stats    `json:"stats"`
	Saving   bool             `json:"saving"`
}

// Settings loads the admin credit settings page: settings and counters concurrently.
// @Summary Credit settings
// @Tags    admin
// @Produce json
// @Success 200 {object} settingsPage
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /admin/credits/settings [get]
func (h *CreditsHandler) Settings(c *fiber.Ctx) error {
	ws, _, err := h.workspaces.Enter(c, auth.AdminOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}

	var page settingsPage
	eg, ctx := errgroup.WithContext(c.UserContext())
	eg.Go(func() error {
		s, err := ws.Settings.Load(ctx)
		page.Settings = s
		return err
	})
	eg.Go(func() error {
		page.Stats = ws.Settings.Stats(ctx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return presenter.Fail(c, err)
	}
	page.Saving = ws.Settings.Saving()
	return presenter.JSON(c, http.StatusOK, page)
}

// SaveSettings stores the credit settings.
// @Summary Update credit settings
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body credits.Settings true "settings"
// @Success 200 {object} map[string]any
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /admin/credits/settings [put]
func (h *CreditsHandler) SaveSettings(c *fiber.Ctx) error {
	var s credits.Settings
	if err := c.BodyParser(&s); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	ws, err := h.workspaces.Act(c, auth.AdminOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	saved, err := ws.Settings.Save(c.UserContext(), s)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"settings": saved, "message": "Settings updated successfully!"})
}
