package talent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/contacts"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/validation"
)

type fakeSearch struct {
	profiles []Profile
	err      error
	last     Filters
	gate     chan struct{}
}

func (f *fakeSearch) Search(ctx context.Context, filters Filters) ([]Profile, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.last = filters
	return f.profiles, f.err
}

type fakeContacts struct {
	calls  atomic.Int32
	access []contacts.Access
}

func (f *fakeContacts) Reveal(ctx context.Context, id string) (contacts.Contact, error) {
	f.calls.Add(1)
	return contacts.Contact{JobseekerID: id, Email: id + "@example.com", Phone: "+91 90000", ValidUntil: "2027-10-15"}, nil
}

func (f *fakeContacts) MyAccess(ctx context.Context) ([]contacts.Access, error) {
	return f.access, nil
}

type fakeSettings struct {
	settings credits.Settings
	err      error
}

func (f fakeSettings) GetSettings(context.Context) (credits.Settings, error) { return f.settings, f.err }
func (f fakeSettings) PutSettings(context.Context, credits.Settings) error   { return nil }

type noBalance struct{}

func (noBalance) Balance(context.Context) (int64, error) { return 0, nil }

func newPage(search Repository, cr *fakeContacts, settings fakeSettings, balance int64) (*SearchPage, *credits.Ledger) {
	l := credits.NewLedger(noBalance{})
	l.Set(balance)
	costs := credits.NewCosts(settings)
	return NewSearchPage(search, contacts.NewRevealer(cr, l, costs), costs), l
}

func intp(v int) *int { return &v }

func TestFilters_NormalizeAndValues(t *testing.T) {
	f := Filters{
		Query:         "  react developer ",
		Location:      " Pune",
		ExperienceMin: intp(2),
		Skills:        "React, react ,C++, C#,,",
		VerifiedOnly:  true,
	}.Normalize()

	assert.Equal(t, "React,C++,C#", f.Skills)
	assert.Equal(t, SortRelevance, f.SortBy)
	require.NoError(t, f.Validate())

	q := f.Values()
	assert.Equal(t, "react developer", q.Get("query"))
	assert.Equal(t, "Pune", q.Get("location"))
	assert.Equal(t, "2", q.Get("experience_min"))
	assert.False(t, q.Has("experience_max"))
	assert.Equal(t, "true", q.Get("verified_only"))
	assert.Equal(t, "relevance", q.Get("sort_by"))

	q = Filters{SortBy: SortRecent}.Values()
	assert.Equal(t, "sort_by=recent", q.Encode())
}

func TestFilters_Validate(t *testing.T) {
	err := Filters{ExperienceMin: intp(5), ExperienceMax: intp(2), SortBy: SortRelevance}.Validate()
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "experience_max")

	err = Filters{SortBy: "salary"}.Validate()
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sort_by")

	err = Filters{ExperienceMin: intp(-1), SortBy: SortRelevance}.Validate()
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "experience_min")
}

func TestSearchPage_OpenRendersRows(t *testing.T) {
	search := &fakeSearch{profiles: []Profile{
		{
			UserID: "js-1", FirstName: "Asha", LastName: "Rao", VerificationStatus: "verified",
			PrimarySkills: []string{"Golang", "React", "SQL", "Docker", "AWS", "Kafka", "Redis", "gRPC"},
		},
		{UserID: "js-2", FirstName: "Ravi", LastName: "K", PrimarySkills: []string{"Java"}},
	}}
	cr := &fakeContacts{access: []contacts.Access{{JobseekerID: "js-2", ValidUntil: "2027-01-01"}}}
	page, _ := newPage(search, cr, fakeSettings{settings: credits.Settings{ContactRevealCost: 3000}}, 5000)

	res, err := page.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.RevealCost)
	assert.Equal(t, int64(5000), res.Balance)
	assert.True(t, res.CanReveal)
	assert.False(t, res.Degraded)
	require.Len(t, res.Rows, 2)

	first := res.Rows[0]
	assert.Equal(t, "Asha Rao", first.FullName)
	assert.True(t, first.Verified)
	assert.Len(t, first.Skills, 6)
	assert.Equal(t, 2, first.MoreSkills)
	assert.False(t, first.Revealed)
	assert.Empty(t, first.Email)

	second := res.Rows[1]
	assert.True(t, second.Revealed, "my-access marks the row revealed")
	assert.Equal(t, "2027-01-01", second.ContactValidUntil)
	assert.Equal(t, []string{"Java"}, second.Skills)
}

func TestSearchPage_MatchedSkillsUseAliases(t *testing.T) {
	search := &fakeSearch{profiles: []Profile{{UserID: "js-1", PrimarySkills: []string{"Golang", "Java"}}}}
	page, _ := newPage(search, &fakeContacts{}, fakeSettings{}, 0)

	res, err := page.Search(context.Background(), Filters{Skills: "go"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"Golang"}, res.Rows[0].MatchedSkills)
	assert.Equal(t, "go", search.last.Skills)
}

func TestSearchPage_FailureShowsEmptyState(t *testing.T) {
	search := &fakeSearch{err: errors.New("backend down")}
	page, _ := newPage(search, &fakeContacts{}, fakeSettings{}, 0)

	res, err := page.Search(context.Background(), Filters{Query: "react"})
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Empty(t, res.Rows)
	assert.Equal(t, "react", res.Filters.Query)
}

func TestSearchPage_RevealUpdatesRowAndBalance(t *testing.T) {
	search := &fakeSearch{profiles: []Profile{{UserID: "js-1", FirstName: "Asha"}}}
	cr := &fakeContacts{}
	page, l := newPage(search, cr, fakeSettings{}, 15000)
	_, err := page.Search(context.Background(), Filters{})
	require.NoError(t, err)

	row, balance, charged, err := page.Reveal(context.Background(), "js-1")
	require.NoError(t, err)
	assert.True(t, charged)
	assert.True(t, row.Revealed)
	assert.Equal(t, "js-1@example.com", row.Email)
	assert.Equal(t, int64(5000), balance)
	assert.Equal(t, int64(5000), l.Balance())

	// second reveal is free and makes no call
	_, balance, charged, err = page.Reveal(context.Background(), "js-1")
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, int64(5000), balance)
	assert.Equal(t, int32(1), cr.calls.Load())

	res := page.Current()
	assert.False(t, res.CanReveal)
	assert.True(t, res.Rows[0].Revealed)
}

func TestSearchPage_RevealWithoutCredits(t *testing.T) {
	page, _ := newPage(&fakeSearch{}, &fakeContacts{}, fakeSettings{}, 500)

	_, _, _, err := page.Reveal(context.Background(), "js-1")
	var ice *contacts.InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, int64(10000), ice.Cost)
}

func TestSearchPage_StaleSearchDiscarded(t *testing.T) {
	slow := &fakeSearch{gate: make(chan struct{}), profiles: []Profile{{UserID: "old"}}}
	page, _ := newPage(slow, &fakeContacts{}, fakeSettings{}, 0)

	done := make(chan error, 1)
	go func() {
		_, err := page.Search(context.Background(), Filters{Query: "old"})
		done <- err
	}()
	require.Eventually(t, func() bool {
		page.mu.Lock()
		defer page.mu.Unlock()
		return page.generation == 1
	}, time.Second, time.Millisecond)

	page.Reset()
	close(slow.gate)
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Empty(t, page.Current().Rows)
}
