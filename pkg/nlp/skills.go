package nlp

import "strings"

// aliases связывает синонимичные названия навыков (уже нормализованные).
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
	"node":       {"nodejs", "node js"},
	"nodejs":     {"node", "node js"},
	"node js":    {"node", "nodejs"},
}

// SkillVariants returns the normalized skill plus its known aliases.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, a := range aliases[base] {
		add(a)
	}

	// многословные навыки: алиасы для каждого слова ("golang developer" -> "go developer")
	words := strings.Fields(base)
	if len(words) > 1 {
		for i, w := range words {
			for _, a := range aliases[w] {
				swapped := append([]string(nil), words...)
				swapped[i] = a
				add(strings.Join(swapped, " "))
			}
		}
	}
	return out
}

// MatchSkills returns the skills from have that answer any of wanted, aliases included.
// Order and spelling follow have.
func MatchSkills(have, wanted []string) []string {
	if len(wanted) == 0 {
		return nil
	}
	want := map[string]struct{}{}
	for _, w := range wanted {
		for _, v := range SkillVariants(w) {
			want[v] = struct{}{}
		}
	}
	var out []string
	for _, h := range have {
		for _, v := range SkillVariants(h) {
			if _, ok := want[v]; ok {
				out = append(out, h)
				break
			}
		}
	}
	return out
}
