package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/vacancy"
)

type VacancyHandler struct {
	workspaces *Workspaces
}

func NewVacancyHandler(workspaces *Workspaces) *VacancyHandler {
	return &VacancyHandler{workspaces: workspaces}
}

// @Summary     Пустая форма вакансии
// @Description Форма с умолчаниями: full-time, onsite, одна позиция, статус active.
// @Tags        Вакансии
// @Produce     json
// @Success     200 {object} vacancy.Posting
// @Failure     403 {object} presenter.ErrorResponse
// @Router      /jobs/new [get]
func (h *VacancyHandler) New(c *fiber.Ctx) error {
	if _, _, err := h.workspaces.Enter(c, auth.EmployerOnly); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, vacancy.NewPosting())
}

type editPostingRequest struct {
	Posting vacancy.Posting `json:"posting"`
	Edit    vacancy.Edit    `json:"edit"`
}

// @Summary     Изменить список в форме
// @Description Добавляет или удаляет пункт в responsibilities, requirements, required_skills, preferred_skills.
// @Tags        Вакансии
// @Accept      json
// @Produce     json
// @Param       input body editPostingRequest true "Форма и изменение"
// @Success     200 {object} vacancy.Posting
// @Failure     422 {object} presenter.ErrorResponse
// @Router      /jobs/draft [post]
func (h *VacancyHandler) Edit(c *fiber.Ctx) error {
	var req editPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	if _, err := h.workspaces.Act(c, auth.EmployerOnly); err != nil {
		return presenter.Fail(c, err)
	}
	p, err := req.Posting.Apply(req.Edit)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary     Опубликовать вакансию
// @Tags        Вакансии
// @Accept      json
// @Produce     json
// @Param       input body vacancy.Posting true "Данные вакансии"
// @Success     201 {object} map[string]any
// @Failure     422 {object} presenter.ErrorResponse
// @Failure     429 {object} presenter.ErrorResponse
// @Router      /jobs [post]
func (h *VacancyHandler) Create(c *fiber.Ctx) error {
	var p vacancy.Posting
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "невалидный JSON")
	}
	ws, err := h.workspaces.Act(c, auth.EmployerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	job, err := ws.Jobs.Post(c.UserContext(), p)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"job":      job,
		"message":  vacancy.PostedMessage,
		"redirect": vacancy.DashboardPath,
	})
}
