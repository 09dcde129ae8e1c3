package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/artem13815/hr/portal/pkg/resume"
)

var (
	ErrNotLoaded  = errors.New("profile is not loaded")
	ErrNotEditing = errors.New("profile is not in edit mode")
	ErrNoSuchItem = errors.New("no item at this position")
	ErrStale      = errors.New("stale profile response discarded")
)

const (
	DefaultNoticePeriodDays = 30
	DefaultSkillWeightage   = 50
)

type Skill struct {
	Name              string   `json:"name" validate:"required"`
	YearsOfExperience float64  `json:"years_of_experience" validate:"gte=0"`
	IsPrimary         bool     `json:"is_primary"`
	Weightage         int      `json:"weightage" validate:"gte=0,lte=100"`
	Rating            *float64 `json:"rating"`
}

type Experience struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

type Education struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
	Grade        string `json:"grade"`
}

// Form: то, что уходит в POST/PUT profiles/jobseeker/profile.
type Form struct {
	FullName             string       `json:"full_name" validate:"required"`
	Headline             string       `json:"headline"`
	About                string       `json:"about"`
	Location             string       `json:"location" validate:"required"`
	TotalExperienceYears float64      `json:"total_experience_years" validate:"gte=0"`
	ExpectedSalary       *float64     `json:"expected_salary" validate:"omitempty,gte=0"`
	NoticePeriodDays     int          `json:"notice_period_days" validate:"gte=0"`
	Skills               []Skill      `json:"skills" validate:"dive"`
	Experience           []Experience `json:"experience" validate:"dive"`
	Education            []Education  `json:"education" validate:"dive"`
}

// Profile: ответ GET profiles/jobseeker/profile.
type Profile struct {
	Form
	UserID             string `json:"user_id,omitempty"`
	ResumeURL          string `json:"resume_url,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
}

// NewForm возвращает пустую форму режима создания.
func NewForm() Form {
	return Form{
		NoticePeriodDays: DefaultNoticePeriodDays,
		Skills:           []Skill{},
		Experience:       []Experience{},
		Education:        []Education{},
	}
}

// FormOf заполняет форму из загруженного профиля, подставляя умолчания для пустых полей.
func FormOf(p Profile) Form {
	f := p.Form
	if f.NoticePeriodDays == 0 {
		f.NoticePeriodDays = DefaultNoticePeriodDays
	}
	if f.Skills == nil {
		f.Skills = []Skill{}
	}
	if f.Experience == nil {
		f.Experience = []Experience{}
	}
	if f.Education == nil {
		f.Education = []Education{}
	}
	return f
}

func (f Form) normalize() Form {
	f = f.clone()
	f.FullName = strings.TrimSpace(f.FullName)
	f.Headline = strings.TrimSpace(f.Headline)
	f.Location = strings.TrimSpace(f.Location)
	for i := range f.Skills {
		f.Skills[i].Name = strings.TrimSpace(f.Skills[i].Name)
	}
	for i := range f.Experience {
		f.Experience[i].Company = strings.TrimSpace(f.Experience[i].Company)
		f.Experience[i].Position = strings.TrimSpace(f.Experience[i].Position)
	}
	for i := range f.Education {
		f.Education[i].Institution = strings.TrimSpace(f.Education[i].Institution)
		f.Education[i].Degree = strings.TrimSpace(f.Education[i].Degree)
	}
	return f
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func (f Form) clone() Form {
	f.Skills = append([]Skill{}, f.Skills...)
	f.Experience = append([]Experience{}, f.Experience...)
	f.Education = append([]Education{}, f.Education...)
	return f
}

// Repository: порт к profiles/jobseeker/profile.
type Repository interface {
	Get(ctx context.Context) (Profile, error)
	Create(ctx context.Context, f Form) error
	Update(ctx context.Context, f Form) error
	UploadResume(ctx context.Context, file resume.File) error
}
