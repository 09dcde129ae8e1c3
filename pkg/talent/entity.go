package talent

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/artem13815/hr/portal/pkg/nlp"
	"github.com/artem13815/hr/portal/pkg/validation"
)

const (
	SortRelevance  = "relevance"
	SortExperience = "experience"
	SortRecent     = "recent"

	// visibleSkills is how many primary skills a row shows before "+N more".
	visibleSkills = 6
)

// Profile is one row of profiles/jobseeker/search.
type Profile struct {
	UserID             string   `json:"user_id"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Headline           string   `json:"headline,omitempty"`
	CurrentPosition    string   `json:"current_position,omitempty"`
	CurrentCompany     string   `json:"current_company,omitempty"`
	Location           string   `json:"location,omitempty"`
	ExperienceYears    float64  `json:"experience_years"`
	PrimarySkills      []string `json:"primary_skills"`
	VerificationStatus string   `json:"verification_status,omitempty"`
	Email              string   `json:"email,omitempty"`
	Phone              string   `json:"phone,omitempty"`
}

// Filters of the talent search form. Empty values are not sent.
type Filters struct {
	Query         string `json:"query"`
	Location      string `json:"location"`
	ExperienceMin *int   `json:"experience_min,omitempty" validate:"omitempty,gte=0"`
	ExperienceMax *int   `json:"experience_max,omitempty" validate:"omitempty,gte=0"`
	Skills        string `json:"skills"`
	VerifiedOnly  bool   `json:"verified_only"`
	SortBy        string `json:"sort_by" validate:"oneof=relevance experience recent"`
}

// Normalize trims the inputs, defaults the sort order and dedupes the skills list.
func (f Filters) Normalize() Filters {
	f.Query = strings.TrimSpace(f.Query)
	f.Location = strings.TrimSpace(f.Location)
	f.SortBy = strings.ToLower(strings.TrimSpace(f.SortBy))
	if f.SortBy == "" {
		f.SortBy = SortRelevance
	}

	var skills []string
	seen := map[string]struct{}{}
	for _, s := range strings.Split(f.Skills, ",") {
		s = strings.TrimSpace(s)
		key := nlp.SkillKey(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	f.Skills = strings.Join(skills, ",")
	return f
}

func (f Filters) Validate() error {
	return validation.Struct(f,
		validation.When(f.ExperienceMin != nil && f.ExperienceMax != nil && *f.ExperienceMax < *f.ExperienceMin,
			"experience_max", "Must be greater than or equal to experience_min"),
	)
}

// Values encodes the filters for the search endpoint. sort_by is always sent.
func (f Filters) Values() url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.ExperienceMin != nil {
		q.Set("experience_min", strconv.Itoa(*f.ExperienceMin))
	}
	if f.ExperienceMax != nil {
		q.Set("experience_max", strconv.Itoa(*f.ExperienceMax))
	}
	if f.Skills != "" {
		q.Set("skills", f.Skills)
	}
	if f.VerifiedOnly {
		q.Set("verified_only", "true")
	}
	q.Set("sort_by", f.SortBy)
	return q
}

// SkillList returns the requested skills.
func (f Filters) SkillList() []string {
	if f.Skills == "" {
		return nil
	}
	return strings.Split(f.Skills, ",")
}

type Repository interface {
	Search(ctx context.Context, f Filters) ([]Profile, error)
}
