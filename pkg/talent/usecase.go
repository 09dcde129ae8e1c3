package talent

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/portal/pkg/contacts"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/nlp"
)

var ErrStale = errors.New("stale search discarded")

// Row is a search result as displayed: contact fields are present only once revealed.
type Row struct {
	UserID            string   `json:"user_id"`
	FullName          string   `json:"full_name"`
	CurrentPosition   string   `json:"current_position,omitempty"`
	CurrentCompany    string   `json:"current_company,omitempty"`
	Location          string   `json:"location,omitempty"`
	ExperienceYears   float64  `json:"experience_years"`
	Verified          bool     `json:"verified"`
	Skills            []string `json:"skills"`
	MoreSkills        int      `json:"more_skills"`
	MatchedSkills     []string `json:"matched_skills,omitempty"`
	State             string   `json:"state"`
	Revealed          bool     `json:"revealed"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	ContactValidUntil string   `json:"contact_valid_until,omitempty"`
}

// Result is the whole page state after a search.
type Result struct {
	Filters    Filters `json:"filters"`
	Rows       []Row   `json:"rows"`
	Balance    int64   `json:"balance"`
	RevealCost int64   `json:"reveal_cost"`
	CanReveal  bool    `json:"can_reveal"`
	// Degraded is set when the search itself failed and the empty state is shown.
	Degraded bool `json:"degraded"`
}

// SearchPage is the employer talent search for one session.
type SearchPage struct {
	repo     Repository
	revealer *contacts.Revealer
	costs    *credits.Costs

	mu         sync.Mutex
	generation uint64
	filters    Filters
	profiles   []Profile
	degraded   bool
}

func NewSearchPage(repo Repository, revealer *contacts.Revealer, costs *credits.Costs) *SearchPage {
	return &SearchPage{
		repo:     repo,
		revealer: revealer,
		costs:    costs,
		filters:  Filters{SortBy: SortRelevance},
	}
}

// Search runs the search and the my-access read concurrently. A newer search
// supersedes this one (ErrStale). A failed search renders as an empty result.
func (p *SearchPage) Search(ctx context.Context, f Filters) (Result, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	var (
		found     []Profile
		searchErr error
	)
	var eg errgroup.Group
	eg.Go(func() error {
		found, searchErr = p.repo.Search(ctx, f)
		return nil
	})
	eg.Go(func() error {
		if err := p.revealer.Sync(ctx); err != nil && !errors.Is(err, contacts.ErrStale) {
			logger.CtxWarn(ctx, "my-access sync failed", "error", err)
		}
		return nil
	})
	_ = eg.Wait()

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return Result{}, ErrStale
	}
	p.filters = f
	if searchErr != nil {
		logger.CtxWarn(ctx, "talent search failed", "error", searchErr)
		p.profiles = nil
		p.degraded = true
	} else {
		p.profiles = found
		p.degraded = false
	}
	p.mu.Unlock()

	return p.Current(), nil
}

// Open is the page entry: settings (for the reveal cost) and the first search.
func (p *SearchPage) Open(ctx context.Context) (Result, error) {
	if _, err := p.costs.Load(ctx); err != nil {
		logger.CtxWarn(ctx, "credit settings unavailable, using defaults", "error", err)
	}
	p.mu.Lock()
	f := p.filters
	p.mu.Unlock()
	return p.Search(ctx, f)
}

// Current renders the last search against the current reveal state and balance.
func (p *SearchPage) Current() Result {
	p.mu.Lock()
	f := p.filters
	profiles := append([]Profile(nil), p.profiles...)
	degraded := p.degraded
	p.mu.Unlock()

	revealed, balance := p.revealer.Snapshot()
	cost := p.costs.ContactReveal()

	rows := make([]Row, 0, len(profiles))
	for _, prof := range profiles {
		c, ok := revealed[prof.UserID]
		rows = append(rows, buildRow(prof, c, ok, f.SkillList()))
	}
	return Result{
		Filters:    f,
		Rows:       rows,
		Balance:    balance,
		RevealCost: cost,
		CanReveal:  credits.CanAfford(balance, cost),
		Degraded:   degraded,
	}
}

// Reveal unlocks one row. The returned row and balance are read together.
func (p *SearchPage) Reveal(ctx context.Context, jobseekerID string) (Row, int64, bool, error) {
	_, charged, err := p.revealer.Reveal(ctx, jobseekerID)
	if err != nil {
		return Row{}, 0, false, err
	}
	view := p.revealer.View(jobseekerID)
	prof := p.profile(jobseekerID)
	p.mu.Lock()
	skills := p.filters.SkillList()
	p.mu.Unlock()
	return buildRow(prof, view.Contact, view.State == contacts.StateRevealed, skills), view.Balance, charged, nil
}

func (p *SearchPage) profile(id string) Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, prof := range p.profiles {
		if prof.UserID == id {
			return prof
		}
	}
	return Profile{UserID: id}
}

// Reset drops the results; an in-flight search will be discarded.
func (p *SearchPage) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.filters = Filters{SortBy: SortRelevance}
	p.profiles = nil
	p.degraded = false
}

func buildRow(prof Profile, c contacts.Contact, revealed bool, wanted []string) Row {
	row := Row{
		UserID:          prof.UserID,
		FullName:        strings.TrimSpace(prof.FirstName + " " + prof.LastName),
		CurrentPosition: prof.CurrentPosition,
		CurrentCompany:  prof.CurrentCompany,
		Location:        prof.Location,
		ExperienceYears: prof.ExperienceYears,
		Verified:        prof.VerificationStatus == "verified",
		State:           string(contacts.StateHidden),
		MatchedSkills:   nlp.MatchSkills(prof.PrimarySkills, wanted),
	}
	row.Skills = prof.PrimarySkills
	if len(row.Skills) > visibleSkills {
		row.MoreSkills = len(row.Skills) - visibleSkills
		row.Skills = row.Skills[:visibleSkills]
	}
	if row.Skills == nil {
		row.Skills = []string{}
	}

	if revealed {
		row.Revealed = true
		row.State = string(contacts.StateRevealed)
		row.Email = firstNonEmpty(c.Email, prof.Email)
		row.Phone = firstNonEmpty(c.Phone, prof.Phone)
		row.ContactValidUntil = c.ValidUntil
	}
	return row
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
