package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required"`
}

type form struct {
	Title  string `json:"title" validate:"required"`
	Mode   string `json:"mode" validate:"oneof=onsite remote hybrid"`
	Count  int    `json:"count" validate:"min=1"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Items  []item `json:"items" validate:"dive"`
	Ignore string `json:"-"`
}

func TestValidate_ReportsJSONPaths(t *testing.T) {
	f := form{Mode: "office", Items: []item{{Name: "ok"}, {}}}

	err := Struct(f)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required", verr.Fields["title"])
	assert.Equal(t, "Must be one of: onsite, remote, hybrid", verr.Fields["mode"])
	assert.Equal(t, "Must be at least 1", verr.Fields["count"])
	assert.Equal(t, "This field is required", verr.Fields["items[1].name"])
	assert.NotContains(t, verr.Fields, "items[0].name")
}

func TestValidate_CrossFieldChecks(t *testing.T) {
	f := form{Title: "x", Mode: "remote", Count: 1, Min: 5, Max: 2}

	err := Struct(f, When(f.Max < f.Min, "max", "Must be greater than or equal to min"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"max": "Must be greater than or equal to min"}, verr.Fields)
	assert.Equal(t, "Must be greater than or equal to min", verr.First())

	assert.NoError(t, Struct(f, When(false, "max", "unused")))
}

func TestValidationError_StableMessage(t *testing.T) {
	e := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", e.Error())
}
