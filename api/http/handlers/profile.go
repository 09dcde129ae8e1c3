package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/hr/portal/api/http/presenter"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/profile"
	"github.com/artem13815/hr/portal/pkg/resume"
)

type ProfileHandler struct {
	workspaces *Workspaces
}

func NewProfileHandler(workspaces *Workspaces) *ProfileHandler {
	return &ProfileHandler{workspaces: workspaces}
}

// Get opens the profile page. Without a profile the page starts in create mode.
// @Summary Jobseeker profile
// @Tags    profile
// @Produce json
// @Success 200 {object} profile.State
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	ws, _, err := h.workspaces.Enter(c, auth.JobseekerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	st, err := ws.Profile.Load(c.UserContext())
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// Edit switches to edit mode; Cancel drops the draft.
// @Summary Start editing
// @Tags    profile
// @Produce json
// @Success 200 {object} profile.State
// @Router  /profile/edit [post]
func (h *ProfileHandler) Edit(c *fiber.Ctx) error {
	return h.mutate(c, func(e *profile.Editor) error { return e.Edit() })
}

// @Summary Cancel editing
// @Tags    profile
// @Produce json
// @Success 200 {object} profile.State
// @Router  /profile/cancel [post]
func (h *ProfileHandler) Cancel(c *fiber.Ctx) error {
	return h.mutate(c, func(e *profile.Editor) error { return e.Cancel() })
}

// @Summary Replace the draft
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body profile.Form true "draft"
// @Success 200 {object} profile.State
// @Router  /profile/draft [put]
func (h *ProfileHandler) SetDraft(c *fiber.Ctx) error {
	var f profile.Form
	if err := c.BodyParser(&f); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return h.mutate(c, func(e *profile.Editor) error { return e.SetDraft(f) })
}

// @Summary Add a skill to the draft
// @Tags    profile
// @Accept  json
// @Param   input body profile.Skill true "skill"
// @Success 200 {object} profile.State
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /profile/skills [post]
func (h *ProfileHandler) AddSkill(c *fiber.Ctx) error {
	var s profile.Skill
	if err := c.BodyParser(&s); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return h.mutate(c, func(e *profile.Editor) error { return e.AddSkill(s) })
}

// @Summary Add an experience entry to the draft
// @Tags    profile
// @Accept  json
// @Param   input body profile.Experience true "experience"
// @Success 200 {object} profile.State
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /profile/experience [post]
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	var x profile.Experience
	if err := c.BodyParser(&x); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return h.mutate(c, func(e *profile.Editor) error { return e.AddExperience(x) })
}

// @Summary Add an education entry to the draft
// @Tags    profile
// @Accept  json
// @Param   input body profile.Education true "education"
// @Success 200 {object} profile.State
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /profile/education [post]
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	var ed profile.Education
	if err := c.BodyParser(&ed); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return h.mutate(c, func(e *profile.Editor) error { return e.AddEducation(ed) })
}

// RemoveItem deletes the index-th entry of skills, experience or education.
// @Summary Remove a draft list entry
// @Tags    profile
// @Param   list  path string true "skills | experience | education"
// @Param   index path int    true "position"
// @Success 200 {object} profile.State
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile/{list}/{index} [delete]
func (h *ProfileHandler) RemoveItem(c *fiber.Ctx) error {
	i, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return presenter.Fail(c, fieldError("index", "Must be a whole number"))
	}
	var remove func(*profile.Editor) error
	switch c.Params("list") {
	case "skills":
		remove = func(e *profile.Editor) error { return e.RemoveSkill(i) }
	case "experience":
		remove = func(e *profile.Editor) error { return e.RemoveExperience(i) }
	case "education":
		remove = func(e *profile.Editor) error { return e.RemoveEducation(i) }
	default:
		return presenter.Error(c, http.StatusNotFound, "unknown list")
	}
	return h.mutate(c, remove)
}

// Save sends the draft: create when there is no profile yet, update otherwise.
// @Summary Save profile
// @Tags    profile
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /profile [post]
func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	ws, err := h.workspaces.Act(c, auth.JobseekerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	msg, err := ws.Profile.Save(c.UserContext())
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": msg, "state": ws.Profile.State()})
}

// UploadResume checks the file locally and forwards it to the backend.
// @Summary Upload resume
// @Tags    profile
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "PDF, DOC or DOCX, up to 20MB"
// @Success 200 {object} map[string]any
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	ws, err := h.workspaces.Act(c, auth.JobseekerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Fail(c, resume.ErrEmpty)
	}
	if fh.Size > resume.MaxSize {
		return presenter.Fail(c, resume.ErrTooLarge)
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxSize+1))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}
	msg, err := ws.Profile.UploadResume(c.UserContext(), fh.Filename, data)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": msg, "state": ws.Profile.State()})
}

func (h *ProfileHandler) mutate(c *fiber.Ctx, fn func(*profile.Editor) error) error {
	ws, err := h.workspaces.Act(c, auth.JobseekerOnly)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if err := fn(ws.Profile); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, ws.Profile.State())
}
