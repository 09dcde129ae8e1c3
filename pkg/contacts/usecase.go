package contacts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/logger"
)

// View is what a talent row shows: state, contact and the balance, read together.
type View struct {
	State   State   `json:"state"`
	Contact Contact `json:"contact"`
	Balance int64   `json:"balance"`
}

// Revealer runs the credit-gated reveal for one session.
//
// Lock order is ledger, then r.mu: state changes that move the balance happen
// inside ledger.Atomic so readers never see one without the other.
type Revealer struct {
	repo    Repository
	ledger  *credits.Ledger
	costs   CostSource
	pending *inflight.Keyed

	mu         sync.Mutex
	revealed   map[string]Contact
	synced     bool
	generation uint64
}

// costLoader is a CostSource that can fetch its table from the backend.
type costLoader interface {
	Load(ctx context.Context) (credits.CostTable, error)
}

func NewRevealer(repo Repository, ledger *credits.Ledger, costs CostSource) *Revealer {
	return &Revealer{
		repo:     repo,
		ledger:   ledger,
		costs:    costs,
		pending:  inflight.NewKeyed(),
		revealed: make(map[string]Contact),
	}
}

// Reveal unlocks a jobseeker's contact. charged is true only when this call
// spent credits. An already revealed pair costs nothing and makes no call.
func (r *Revealer) Reveal(ctx context.Context, jobseekerID string) (Contact, bool, error) {
	jobseekerID = strings.TrimSpace(jobseekerID)
	if jobseekerID == "" {
		return Contact{}, false, ErrMissingJobseeker
	}
	if err := r.ensureLoaded(ctx); err != nil {
		return Contact{}, false, err
	}
	if c, ok := r.Contact(jobseekerID); ok {
		return c, false, nil
	}

	release, err := r.pending.Acquire(jobseekerID)
	if err != nil {
		return Contact{}, false, err
	}
	defer release()

	// a reveal for the same id may have finished between the check and Acquire
	if c, ok := r.Contact(jobseekerID); ok {
		return c, false, nil
	}

	cost := r.costs.ContactReveal()
	if bal := r.ledger.Balance(); !credits.CanAfford(bal, cost) {
		return Contact{}, false, &InsufficientCreditsError{Cost: cost, Balance: bal}
	}

	gen := r.currentGeneration()
	got, err := r.repo.Reveal(ctx, jobseekerID)
	if err != nil {
		logger.CtxWarn(ctx, "contact reveal failed", "jobseeker_id", jobseekerID, "error", err)
		return Contact{}, false, err
	}
	if got.JobseekerID == "" {
		got.JobseekerID = jobseekerID
	}

	applied := false
	r.ledger.Atomic(func(tx *credits.Tx) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.generation != gen {
			return
		}
		tx.Debit(cost)
		r.revealed[jobseekerID] = got
		applied = true
	})
	if !applied {
		return Contact{}, false, ErrStale
	}

	logger.CtxInfo(ctx, "contact revealed", "jobseeker_id", jobseekerID, "cost", cost)
	return got, true, nil
}

// Sync marks every jobseeker from contacts/my-access as revealed.
func (r *Revealer) Sync(ctx context.Context) error {
	gen := r.currentGeneration()
	list, err := r.repo.MyAccess(ctx)
	if err != nil {
		return fmt.Errorf("my access: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return ErrStale
	}
	r.synced = true
	for _, a := range list {
		if a.JobseekerID == "" {
			continue
		}
		if _, ok := r.revealed[a.JobseekerID]; !ok {
			r.revealed[a.JobseekerID] = Contact{JobseekerID: a.JobseekerID, ValidUntil: a.ValidUntil}
		}
	}
	return nil
}

func (r *Revealer) State(jobseekerID string) State {
	if _, ok := r.Contact(jobseekerID); ok {
		return StateRevealed
	}
	return StateHidden
}

// Contact returns the cached contact of a revealed pair.
func (r *Revealer) Contact(jobseekerID string) (Contact, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.revealed[jobseekerID]
	return c, ok
}

// View reads state, contact and balance in one step.
func (r *Revealer) View(jobseekerID string) View {
	var v View
	r.ledger.Atomic(func(tx *credits.Tx) {
		r.mu.Lock()
		defer r.mu.Unlock()
		v.Balance = tx.Balance()
		v.State = StateHidden
		if c, ok := r.revealed[jobseekerID]; ok {
			v.State = StateRevealed
			v.Contact = c
		}
	})
	return v
}

// Revealed returns a copy of the revealed set.
func (r *Revealer) Revealed() map[string]Contact {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Contact, len(r.revealed))
	for k, v := range r.revealed {
		out[k] = v
	}
	return out
}

// Snapshot returns the revealed set and the balance read together.
func (r *Revealer) Snapshot() (map[string]Contact, int64) {
	var (
		out     map[string]Contact
		balance int64
	)
	r.ledger.Atomic(func(tx *credits.Tx) {
		r.mu.Lock()
		defer r.mu.Unlock()
		balance = tx.Balance()
		out = make(map[string]Contact, len(r.revealed))
		for k, v := range r.revealed {
			out[k] = v
		}
	})
	return out, balance
}

// Pending reports whether a reveal for the jobseeker is in flight.
func (r *Revealer) Pending(jobseekerID string) bool {
	return r.pending.Busy(jobseekerID)
}

// Reset forgets every reveal; responses to calls started before it are dropped.
func (r *Revealer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.synced = false
	r.revealed = make(map[string]Contact)
}

// ensureLoaded fills in what a page load would have fetched when an action
// comes first: the balance, the cost table and the my-access list.
// Without a balance the affordability check cannot run, so that error is returned.
func (r *Revealer) ensureLoaded(ctx context.Context) error {
	if r.ledger.Snapshot().Version == 0 {
		if _, err := r.ledger.Refresh(ctx); err != nil {
			return fmt.Errorf("load balance: %w", err)
		}
	}
	if l, ok := r.costs.(costLoader); ok {
		if _, err := l.Load(ctx); err != nil {
			logger.CtxWarn(ctx, "cost table load failed, using current table", "error", err)
		}
	}
	r.mu.Lock()
	synced := r.synced
	r.mu.Unlock()
	if !synced {
		if err := r.Sync(ctx); err != nil {
			logger.CtxWarn(ctx, "my-access sync before reveal failed", "error", err)
		}
	}
	return nil
}

func (r *Revealer) currentGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}
