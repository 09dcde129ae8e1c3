package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/interview"
	"github.com/artem13815/hr/portal/pkg/logger"
)

type InterviewHandler struct {
	workspaces *Workspaces
}

func NewInterviewHandler(workspaces *Workspaces) *InterviewHandler {
	return &InterviewHandler{workspaces: workspaces}
}

type boardResponse struct {
	Tab                interview.Tab       `json:"tab"`
	Requests           []interview.Request `json:"requests"`
	Balance            int64               `json:"balance"`
	CompletionEarnings int64               `json:"completion_earnings"`
}

// List shows one tab of the interviewer dashboard.
// @Summary Interview requests
// @Tags    interviews
// @Produce json
// @Param   tab query string false "available | assigned | completed"
// @Success 200 {object} boardResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /interviews [get]
func (h *InterviewHandler) List(c *fiber.Ctx) error {
	tab, err := interview.ParseTab(c.Query("tab"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	ws, _, err := h.workspaces.Enter(c, auth.InterviewerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if _, err := ws.Costs.Load(c.UserContext()); err != nil {
		logger.CtxWarn(c.UserContext(), "credit settings unavailable, using defaults", "error", err)
	}

	list, err := ws.Board.Load(c.UserContext(), tab)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, boardResponse{
		Tab:                tab,
		Requests:           list,
		Balance:            ws.Ledger.Balance(),
		CompletionEarnings: ws.Costs.CompletionEarnings(),
	})
}

// Accept takes an open request.
// @Summary Accept interview request
// @Tags    interviews
// @Produce json
// @Param   id path string true "request id"
// @Success 200 {object} interview.Request
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/accept [post]
func (h *InterviewHandler) Accept(c *fiber.Ctx) error {
	ws, err := h.workspaces.Act(c, auth.InterviewerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	req, err := ws.Board.Accept(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"request": req, "message": "Interview request accepted!"})
}

type ratingForm struct {
	Request  interview.Request  `json:"request"`
	Ratings  map[string]float64 `json:"ratings"`
	Feedback string             `json:"feedback"`
}

// RatingForm seeds the rating dialog.
// @Summary Rating dialog defaults
// @Tags    interviews
// @Produce json
// @Param   id path string true "request id"
// @Success 200 {object} ratingForm
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/rating [get]
func (h *InterviewHandler) RatingForm(c *fiber.Ctx) error {
	ws, err := h.workspaces.Act(c, auth.InterviewerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	req, err := ws.Board.Lookup(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, ratingForm{Request: req, Ratings: interview.DefaultRatings(req)})
}

type submitRatingRequest struct {
	Ratings  map[string]float64 `json:"ratings"`
	Feedback string             `json:"feedback"`
}

// SubmitRating completes an assigned interview and credits the earnings.
// @Summary Submit ratings
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   id    path string              true "request id"
// @Param   input body submitRatingRequest true "ratings per skill"
// @Success 200 {object} map[string]any
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /interviews/{id}/rating [post]
func (h *InterviewHandler) SubmitRating(c *fiber.Ctx) error {
	var body submitRatingRequest
	if err := c.BodyParser(&body); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	ws, err := h.workspaces.Act(c, auth.InterviewerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	req, err := ws.Board.SubmitRating(c.UserContext(), c.Params("id"), body.Ratings, body.Feedback)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"request": req,
		"balance": ws.Ledger.Snapshot(),
		"message": "Rating submitted successfully!",
	})
}
