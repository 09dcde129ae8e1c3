package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/resume"
	"github.com/artem13815/hr/portal/pkg/validation"
)

// State: снимок страницы профиля.
type State struct {
	Loaded    bool     `json:"loaded"`
	Creating  bool     `json:"creating"`
	Editing   bool     `json:"editing"`
	Saving    bool     `json:"saving"`
	Uploading bool     `json:"uploading"`
	Profile   *Profile `json:"profile,omitempty"`
	Draft     Form     `json:"draft"`
}

// Editor ведёт страницу профиля соискателя в рамках одной сессии.
// Пока профиля нет (GET отдал 404), сохранение идёт через POST, иначе через PUT.
type Editor struct {
	repo   Repository
	save   inflight.Gate
	upload inflight.Gate

	mu         sync.Mutex
	loaded     bool
	editing    bool
	profile    *Profile
	draft      Form
	generation uint64
}

func NewEditor(repo Repository) *Editor {
	return &Editor{repo: repo, draft: NewForm()}
}

// Load читает профиль. 404 переводит страницу в режим создания с включённым редактированием.
func (e *Editor) Load(ctx context.Context) (State, error) {
	gen := e.currentGeneration()
	p, err := e.repo.Get(ctx)

	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		return State{}, ErrStale
	}
	switch {
	case err == nil:
		e.profile = &p
		e.draft = FormOf(p)
		e.loaded = true
	case apiclient.Is(err, apiclient.KindNotFound):
		e.profile = nil
		e.draft = NewForm()
		e.editing = true
		e.loaded = true
		err = nil
	}
	e.mu.Unlock()

	if err != nil {
		return State{}, fmt.Errorf("load profile: %w", err)
	}
	return e.State(), nil
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := State{
		Loaded:    e.loaded,
		Creating:  e.loaded && e.profile == nil,
		Editing:   e.editing,
		Saving:    e.save.Busy(),
		Uploading: e.upload.Busy(),
		Draft:     e.draft.clone(),
	}
	if e.profile != nil {
		p := *e.profile
		st.Profile = &p
	}
	return st
}

// Edit включает редактирование. Cancel отбрасывает черновик.
func (e *Editor) Edit() error {
	return e.mutate(func() error {
		e.editing = true
		return nil
	}, false)
}

func (e *Editor) Cancel() error {
	return e.mutate(func() error {
		if e.profile == nil {
			e.draft = NewForm()
			return nil
		}
		e.draft = FormOf(*e.profile)
		e.editing = false
		return nil
	}, false)
}

// SetDraft заменяет черновик целиком, например формой, пришедшей с клиента.
func (e *Editor) SetDraft(f Form) error {
	return e.mutate(func() error {
		e.draft = FormOf(Profile{Form: f.clone()})
		return nil
	}, true)
}

// AddSkill добавляет навык, если у него есть название. Оценка у нового навыка пустая.
func (e *Editor) AddSkill(s Skill) error {
	s.Rating = nil
	if s.Weightage == 0 {
		s.Weightage = DefaultSkillWeightage
	}
	if err := validateItem(s, "name", s.Name); err != nil {
		return err
	}
	return e.mutate(func() error {
		e.draft.Skills = append(e.draft.Skills, s)
		return nil
	}, true)
}

func (e *Editor) RemoveSkill(i int) error {
	return e.mutate(func() error {
		if i < 0 || i >= len(e.draft.Skills) {
			return ErrNoSuchItem
		}
		e.draft.Skills = append(e.draft.Skills[:i:i], e.draft.Skills[i+1:]...)
		return nil
	}, true)
}

// AddExperience требует компанию и должность.
func (e *Editor) AddExperience(x Experience) error {
	if err := validateItem(x, "company", x.Company, "position", x.Position); err != nil {
		return err
	}
	return e.mutate(func() error {
		e.draft.Experience = append(e.draft.Experience, x)
		return nil
	}, true)
}

func (e *Editor) RemoveExperience(i int) error {
	return e.mutate(func() error {
		if i < 0 || i >= len(e.draft.Experience) {
			return ErrNoSuchItem
		}
		e.draft.Experience = append(e.draft.Experience[:i:i], e.draft.Experience[i+1:]...)
		return nil
	}, true)
}

// AddEducation требует учебное заведение и степень.
func (e *Editor) AddEducation(ed Education) error {
	if err := validateItem(ed, "institution", ed.Institution, "degree", ed.Degree); err != nil {
		return err
	}
	return e.mutate(func() error {
		e.draft.Education = append(e.draft.Education, ed)
		return nil
	}, true)
}

func (e *Editor) RemoveEducation(i int) error {
	return e.mutate(func() error {
		if i < 0 || i >= len(e.draft.Education) {
			return ErrNoSuchItem
		}
		e.draft.Education = append(e.draft.Education[:i:i], e.draft.Education[i+1:]...)
		return nil
	}, true)
}

// Save отправляет черновик (POST при создании, PUT при обновлении) и перечитывает профиль.
// Возвращает текст для уведомления.
func (e *Editor) Save(ctx context.Context) (string, error) {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return "", ErrNotLoaded
	}
	if !e.editing {
		e.mu.Unlock()
		return "", ErrNotEditing
	}
	form := e.draft.normalize()
	creating := e.profile == nil
	gen := e.generation
	e.mu.Unlock()

	if err := validation.Struct(form); err != nil {
		return "", err
	}

	msg := "Profile updated successfully!"
	if creating {
		msg = "Profile created successfully!"
	}
	err := e.save.Run(func() error {
		var err error
		if creating {
			err = e.repo.Create(ctx, form)
		} else {
			err = e.repo.Update(ctx, form)
		}
		if err != nil {
			return err
		}

		e.mu.Lock()
		if e.generation != gen {
			e.mu.Unlock()
			return ErrStale
		}
		e.editing = false
		e.draft = form
		e.mu.Unlock()

		if _, err := e.Load(ctx); err != nil {
			logger.CtxWarn(ctx, "profile reload after save failed", "error", err)
		}
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "profile save failed", "creating", creating, "error", err)
		return "", err
	}
	logger.CtxInfo(ctx, "profile saved", "creating", creating)
	return msg, nil
}

// UploadResume проверяет файл локально и только потом отправляет его на бэкенд.
func (e *Editor) UploadResume(ctx context.Context, filename string, data []byte) (string, error) {
	file, err := resume.Preflight(filename, data)
	if err != nil {
		return "", err
	}

	err = e.upload.Run(func() error {
		if err := e.repo.UploadResume(ctx, file); err != nil {
			return err
		}
		if _, err := e.Load(ctx); err != nil {
			logger.CtxWarn(ctx, "profile reload after upload failed", "error", err)
		}
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "resume upload failed", "filename", file.Filename, "error", err)
		return "", err
	}
	logger.CtxInfo(ctx, "resume uploaded", "filename", file.Filename, "size", file.Size)
	return "Resume uploaded and converted successfully!", nil
}

// Reset забывает профиль; незавершённые загрузки будут отброшены.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	e.loaded = false
	e.editing = false
	e.profile = nil
	e.draft = NewForm()
}

func (e *Editor) mutate(fn func() error, needEditing bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return ErrNotLoaded
	}
	if needEditing && !e.editing {
		return ErrNotEditing
	}
	return fn()
}

func (e *Editor) currentGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// validateItem проверяет обязательные поля элемента списка (пары имя/значение).
func validateItem(item any, required ...string) error {
	checks := make([]validation.Check, 0, len(required)/2)
	for i := 0; i+1 < len(required); i += 2 {
		checks = append(checks, validation.When(isBlank(required[i+1]), required[i], "This field is required"))
	}
	return validation.Struct(item, checks...)
}
