package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillVariants(t *testing.T) {
	assert.Equal(t, []string{"golang", "go"}, SkillVariants(" GoLang "))
	assert.Equal(t, []string{"golang developer", "go developer"}, SkillVariants("Golang Developer"))
	assert.Equal(t, []string{"react"}, SkillVariants("React"))
	assert.Empty(t, SkillVariants("  "))
}

func TestMatchSkills(t *testing.T) {
	have := []string{"Golang", "PostgreSQL", "React"}
	assert.Equal(t, []string{"Golang", "PostgreSQL"}, MatchSkills(have, []string{"go", "postgres"}))
	assert.Nil(t, MatchSkills(have, nil))
	assert.Nil(t, MatchSkills(have, []string{"rust"}))
}

func TestSkillKeyKeepsSymbols(t *testing.T) {
	assert.Equal(t, "c++", SkillKey("  C++ "))
	assert.NotEqual(t, SkillKey("C++"), SkillKey("C#"))
	assert.Equal(t, "machine learning", SkillKey("Machine   Learning"))
	assert.Equal(t, "c", NormalizeSkill("C++"))
}
