package vacancy

import (
	"context"
	"strings"

	"github.com/artem13815/hr/portal/pkg/nlp"
	"github.com/artem13815/hr/portal/pkg/validation"
)

const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"

	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"

	StatusActive = "active"
	StatusDraft  = "draft"
)

// Posting: форма публикации вакансии, тело POST jobs/jobs.
type Posting struct {
	JobTitle         string   `json:"job_title" validate:"required"`
	JobType          string   `json:"job_type" validate:"oneof=full-time part-time contract internship remote"`
	Location         string   `json:"location" validate:"required"`
	WorkMode         string   `json:"work_mode" validate:"oneof=onsite remote hybrid"`
	Description      string   `json:"description" validate:"required"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	MinExperience    float64  `json:"min_experience" validate:"gte=0"`
	MaxExperience    *float64 `json:"max_experience" validate:"omitempty,gte=0"`
	MinSalary        *float64 `json:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary        *float64 `json:"max_salary" validate:"omitempty,gte=0"`
	NumberOfOpenings int      `json:"number_of_openings" validate:"gte=1"`
	Status           string   `json:"status" validate:"oneof=active draft"`
}

// Job: ответ бэкенда на публикацию.
type Job struct {
	JobID    string `json:"job_id"`
	JobTitle string `json:"job_title"`
	Status   string `json:"status"`
}

// NewPosting возвращает форму с умолчаниями страницы публикации.
func NewPosting() Posting {
	return Posting{
		JobType:          JobTypeFullTime,
		WorkMode:         WorkModeOnsite,
		Responsibilities: []string{},
		Requirements:     []string{},
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		NumberOfOpenings: 1,
		Status:           StatusActive,
	}
}

// Normalize обрезает пробелы и подставляет умолчания для пустых полей выбора.
func (p Posting) Normalize() Posting {
	d := NewPosting()
	p.JobTitle = strings.TrimSpace(p.JobTitle)
	p.Location = strings.TrimSpace(p.Location)
	p.Description = strings.TrimSpace(p.Description)
	if p.JobType == "" {
		p.JobType = d.JobType
	}
	if p.WorkMode == "" {
		p.WorkMode = d.WorkMode
	}
	if p.Status == "" {
		p.Status = d.Status
	}
	// 0 значит «поле не прислали»; отрицательное значение остаётся и не пройдёт проверку
	if p.NumberOfOpenings == 0 {
		p.NumberOfOpenings = d.NumberOfOpenings
	}
	p.Responsibilities = compact(p.Responsibilities, nil)
	p.Requirements = compact(p.Requirements, nil)
	p.RequiredSkills = compact(p.RequiredSkills, nlp.SkillKey)
	p.PreferredSkills = compact(p.PreferredSkills, nlp.SkillKey)
	return p
}

func (p Posting) Validate() error {
	return validation.Struct(p,
		validation.When(p.MaxExperience != nil && *p.MaxExperience < p.MinExperience,
			"max_experience", "Must be greater than or equal to min_experience"),
		validation.When(p.MinSalary != nil && p.MaxSalary != nil && *p.MaxSalary < *p.MinSalary,
			"max_salary", "Must be greater than or equal to min_salary"),
	)
}

// AddResponsibility, AddRequirement: пустые строки отклоняются.
func (p Posting) AddResponsibility(s string) (Posting, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return p, ErrValidation("Responsibility must not be empty")
	}
	p.Responsibilities = append(append([]string{}, p.Responsibilities...), s)
	return p, nil
}

func (p Posting) AddRequirement(s string) (Posting, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return p, ErrValidation("Requirement must not be empty")
	}
	p.Requirements = append(append([]string{}, p.Requirements...), s)
	return p, nil
}

// AddRequiredSkill, AddPreferredSkill: пустые и повторные навыки отклоняются.
func (p Posting) AddRequiredSkill(s string) (Posting, error) {
	list, err := addSkill(p.RequiredSkills, s)
	if err != nil {
		return p, err
	}
	p.RequiredSkills = list
	return p, nil
}

func (p Posting) AddPreferredSkill(s string) (Posting, error) {
	list, err := addSkill(p.PreferredSkills, s)
	if err != nil {
		return p, err
	}
	p.PreferredSkills = list
	return p, nil
}

func (p Posting) RemoveResponsibility(i int) Posting {
	p.Responsibilities = removeAt(p.Responsibilities, i)
	return p
}

func (p Posting) RemoveRequirement(i int) Posting {
	p.Requirements = removeAt(p.Requirements, i)
	return p
}

func (p Posting) RemoveRequiredSkill(skill string) Posting {
	p.RequiredSkills = removeSkill(p.RequiredSkills, skill)
	return p
}

func (p Posting) RemovePreferredSkill(skill string) Posting {
	p.PreferredSkills = removeSkill(p.PreferredSkills, skill)
	return p
}

// Названия списков формы для Apply.
const (
	ListResponsibilities = "responsibilities"
	ListRequirements     = "requirements"
	ListRequiredSkills   = "required_skills"
	ListPreferredSkills  = "preferred_skills"
)

// Edit: одно нажатие "добавить"/"удалить" в списке формы.
// Пункты удаляются по индексу, навыки по названию (Value).
type Edit struct {
	Op    string `json:"op"`
	List  string `json:"list"`
	Value string `json:"value"`
	Index int    `json:"index"`
}

func (p Posting) Apply(e Edit) (Posting, error) {
	switch e.Op + " " + e.List {
	case "add " + ListResponsibilities:
		return p.AddResponsibility(e.Value)
	case "add " + ListRequirements:
		return p.AddRequirement(e.Value)
	case "add " + ListRequiredSkills:
		return p.AddRequiredSkill(e.Value)
	case "add " + ListPreferredSkills:
		return p.AddPreferredSkill(e.Value)
	case "remove " + ListResponsibilities:
		return p.RemoveResponsibility(e.Index), nil
	case "remove " + ListRequirements:
		return p.RemoveRequirement(e.Index), nil
	case "remove " + ListRequiredSkills:
		return p.RemoveRequiredSkill(e.Value), nil
	case "remove " + ListPreferredSkills:
		return p.RemovePreferredSkill(e.Value), nil
	}
	return p, ErrValidation("Unknown list operation")
}

// Repository: порт к jobs/jobs.
type Repository interface {
	Create(ctx context.Context, p Posting) (Job, error)
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

func addSkill(list []string, s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return list, ErrValidation("Skill must not be empty")
	}
	key := nlp.SkillKey(s)
	for _, have := range list {
		if nlp.SkillKey(have) == key {
			return list, ErrValidation("Skill already added")
		}
	}
	return append(append([]string{}, list...), s), nil
}

func removeSkill(list []string, skill string) []string {
	key := nlp.SkillKey(skill)
	out := make([]string, 0, len(list))
	for _, s := range list {
		if nlp.SkillKey(s) != key {
			out = append(out, s)
		}
	}
	return out
}

func removeAt(list []string, i int) []string {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// compact обрезает пробелы, выкидывает пустые и (если задан key) повторы.
func compact(list []string, key func(string) string) []string {
	out := make([]string, 0, len(list))
	seen := map[string]struct{}{}
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if key != nil {
			k := key(s)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}
