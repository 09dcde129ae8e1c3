package interview

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/artem13815/hr/portal/pkg/nlp"
)

const (
	MinRating     = 0.5
	MaxRating     = 5.0
	DefaultRating = 3.0
)

// ValidRating accepts 0.5, 1.0, ... 5.0.
func ValidRating(r float64) bool {
	if math.IsNaN(r) || r < MinRating || r > MaxRating {
		return false
	}
	doubled := r * 2
	return doubled == math.Trunc(doubled)
}

// RatingError lists every problem with a rating set. Nothing is sent while it exists.
type RatingError struct {
	Missing []string
	Invalid []string
	Unknown []string
}

func (e *RatingError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing rating for "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "ratings must be between 0.5 and 5.0 in steps of 0.5: "+strings.Join(e.Invalid, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "not a skill of this request: "+strings.Join(e.Unknown, ", "))
	}
	return strings.Join(parts, "; ")
}

// ValidateRatings checks ratings against the skills to verify. Skill names
// match ignoring case and spacing. The result follows the order of skills and
// uses their spelling.
func ValidateRatings(skills []string, ratings map[string]float64) ([]SkillRating, error) {
	byKey := make(map[string]float64, len(ratings))
	given := make(map[string]string, len(ratings))
	var rerr RatingError

	names := make([]string, 0, len(ratings))
	for name := range ratings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := nlp.SkillKey(name)
		if _, dup := byKey[key]; dup || key == "" {
			rerr.Unknown = append(rerr.Unknown, name)
			continue
		}
		byKey[key] = ratings[name]
		given[key] = name
	}

	out := make([]SkillRating, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		key := nlp.SkillKey(skill)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		r, ok := byKey[key]
		switch {
		case !ok:
			rerr.Missing = append(rerr.Missing, skill)
		case !ValidRating(r):
			rerr.Invalid = append(rerr.Invalid, fmt.Sprintf("%s=%g", skill, r))
		default:
			out = append(out, SkillRating{Skill: skill, Rating: r})
		}
	}

	for key, name := range given {
		if !seen[key] {
			rerr.Unknown = append(rerr.Unknown, name)
		}
	}
	sort.Strings(rerr.Unknown)

	if len(rerr.Missing) > 0 || len(rerr.Invalid) > 0 || len(rerr.Unknown) > 0 {
		return nil, &rerr
	}
	return out, nil
}

// DefaultRatings seeds the rating dialog: every skill at 3.0.
func DefaultRatings(r Request) map[string]float64 {
	out := make(map[string]float64, len(r.SkillsToVerify))
	for _, s := range r.SkillsToVerify {
		out[s] = DefaultRating
	}
	return out
}
