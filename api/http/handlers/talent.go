package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/talent"
)

type TalentHandler struct {
	workspaces *Workspaces
}

func NewTalentHandler(workspaces *Workspaces) *TalentHandler {
	return &TalentHandler{workspaces: workspaces}
}

// Search opens the talent search page; without query parameters the last filters are reused.
// @Summary     Talent search
// @Description Employer-only. Search and contact access are loaded together; a failed search yields an empty, degraded page.
// @Tags        talent
// @Produce     json
// @Param       query          query string false "free text"
// @Param       location       query string false "location"
// @Param       experience_min query int    false "min years"
// @Param       experience_max query int    false "max years"
// @Param       skills         query string false "comma separated skills"
// @Param       verified_only  query bool   false "verified profiles only"
// @Param       sort_by        query string false "relevance | experience | recent"
// @Success     200 {object} talent.Result
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Router      /talent [get]
func (h *TalentHandler) Search(c *fiber.Ctx) error {
	ws, _, err := h.workspaces.Enter(c, auth.TalentSearch)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if len(c.Queries()) == 0 {
		res, err := ws.Talent.Open(c.UserContext())
		if err != nil {
			return presenter.Fail(c, err)
		}
		return presenter.JSON(c, http.StatusOK, res)
	}

	f, err := filtersFromQuery(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if _, err := ws.Costs.Load(c.UserContext()); err != nil {
		logger.CtxWarn(c.UserContext(), "credit settings unavailable, using defaults", "error", err)
	}
	res, err := ws.Talent.Search(c.UserContext(), f)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

type revealResponse struct {
	Row     talent.Row `json:"row"`
	Balance int64      `json:"balance"`
	Charged bool       `json:"charged"`
	Message string     `json:"message"`
}

// Reveal unlocks a candidate's contact details for credits.
// @Summary Reveal contact
// @Tags    talent
// @Produce json
// @Param   id path string true "jobseeker id"
// @Success 200 {object} revealResponse
// @Failure 402 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /talent/{id}/reveal [post]
func (h *TalentHandler) Reveal(c *fiber.Ctx) error {
	ws, err := h.workspaces.Act(c, auth.TalentSearch)
	if err != nil {
		return presenter.Fail(c, err)
	}
	row, balance, charged, err := ws.Talent.Reveal(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	msg := "Contact already revealed"
	if charged {
		msg = "Contact revealed successfully!"
	}
	return presenter.JSON(c, http.StatusOK, revealResponse{Row: row, Balance: balance, Charged: charged, Message: msg})
}

func filtersFromQuery(c *fiber.Ctx) (talent.Filters, error) {
	f := talent.Filters{
		Query:    c.Query("query"),
		Location: c.Query("location"),
		Skills:   c.Query("skills"),
		SortBy:   c.Query("sort_by"),
	}
	f.VerifiedOnly = c.QueryBool("verified_only", false)

	var err error
	if f.ExperienceMin, err = optionalInt(c, "experience_min"); err != nil {
		return f, err
	}
	if f.ExperienceMax, err = optionalInt(c, "experience_max"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fieldError(key, "Must be a whole number")
	}
	return &n, nil
}
