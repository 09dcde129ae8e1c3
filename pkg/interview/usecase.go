package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/logger"
)

var (
	ErrStale    = errors.New("stale response discarded")
	ErrNotFound = errors.New("interview request not found")
)

// EarningsSource prices a completed interview.
type EarningsSource interface {
	CompletionEarnings() int64
}

// Board is the interviewer's request list for one session.
// Loads are generation-stamped: only the latest load may update the board.
// Reset bumps the epoch so that in-flight mutations are not applied either.
type Board struct {
	repo     Repository
	ledger   *credits.Ledger
	earnings EarningsSource
	pending  *inflight.Keyed

	mu         sync.Mutex
	generation uint64
	epoch      uint64
	tab        Tab
	shown      []Request
	known      map[string]Request
}

func NewBoard(repo Repository, ledger *credits.Ledger, earnings EarningsSource) *Board {
	return &Board{
		repo:     repo,
		ledger:   ledger,
		earnings: earnings,
		pending:  inflight.NewKeyed(),
		tab:      TabAvailable,
		known:    make(map[string]Request),
	}
}

// Load fetches the tab's list. A load superseded by a newer one returns ErrStale
// and leaves the board to the newer load. On failure the tab shows nothing.
func (b *Board) Load(ctx context.Context, tab Tab) ([]Request, error) {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.tab = tab
	b.mu.Unlock()

	var (
		list []Request
		err  error
	)
	if tab.Mine() {
		list, err = b.repo.Mine(ctx)
	} else {
		list, err = b.repo.Available(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return nil, ErrStale
	}
	if err != nil {
		b.shown = nil
		return nil, fmt.Errorf("load %s requests: %w", tab, err)
	}
	for _, r := range list {
		if r.RequestID != "" {
			b.known[r.RequestID] = r
		}
	}
	b.shown = Filter(tab, list)
	return append([]Request(nil), b.shown...), nil
}

// Current returns the tab on screen and its rows.
func (b *Board) Current() (Tab, []Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tab, append([]Request(nil), b.shown...)
}

// Get returns a request seen by any load.
func (b *Board) Get(requestID string) (Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.known[requestID]
	return r, ok
}

// Lookup is Get that asks the backend when the board has not seen the request.
func (b *Board) Lookup(ctx context.Context, requestID string) (Request, error) {
	if err := b.discover(ctx, requestID); err != nil {
		return Request{}, err
	}
	r, ok := b.Get(requestID)
	if !ok {
		return Request{}, ErrNotFound
	}
	return r, nil
}

func (b *Board) Pending(requestID string) bool {
	return b.pending.Busy(requestID)
}

// Accept takes a PENDING request. The status changes only after the backend
// acknowledged; a conflict (someone else took it) is returned as is.
func (b *Board) Accept(ctx context.Context, requestID string) (Request, error) {
	if err := b.discover(ctx, requestID); err != nil {
		return Request{}, err
	}
	if _, _, err := b.prepare(requestID, StatusAssigned); err != nil {
		return Request{}, err
	}
	return b.accept(ctx, requestID)
}

// accept holds the request's in-flight key. The transition is checked again
// under it: an earlier accept may have finished after the caller's check.
func (b *Board) accept(ctx context.Context, requestID string) (Request, error) {
	release, err := b.pending.Acquire(requestID)
	if err != nil {
		return Request{}, err
	}
	defer release()

	req, epoch, err := b.prepare(requestID, StatusAssigned)
	if err != nil {
		return Request{}, err
	}
	if err := b.repo.Accept(ctx, requestID); err != nil {
		logger.CtxWarn(ctx, "accept interview request failed", "request_id", requestID, "error", err)
		return Request{}, err
	}

	req.Status = StatusAssigned
	if !b.apply(epoch, req, nil) {
		return Request{}, ErrStale
	}
	logger.CtxInfo(ctx, "interview request accepted", "request_id", requestID)
	return req, nil
}

// SubmitRating completes an ASSIGNED request. Ratings are validated first and
// nothing is sent when they are incomplete. On success the earnings are
// credited optimistically and the balance is then reloaded.
func (b *Board) SubmitRating(ctx context.Context, requestID string, ratings map[string]float64, feedback string) (Request, error) {
	if err := b.discover(ctx, requestID); err != nil {
		return Request{}, err
	}
	req, _, err := b.prepare(requestID, StatusCompleted)
	if err != nil {
		return Request{}, err
	}
	skillRatings, err := ValidateRatings(req.SkillsToVerify, ratings)
	if err != nil {
		return Request{}, err
	}
	return b.submit(ctx, RatingSubmission{
		InterviewRequestID: requestID,
		SkillRatings:       skillRatings,
		Feedback:           strings.TrimSpace(feedback),
	})
}

// submit is accept's counterpart for ratings: one submission per request.
func (b *Board) submit(ctx context.Context, sub RatingSubmission) (Request, error) {
	requestID := sub.InterviewRequestID
	release, err := b.pending.Acquire(requestID)
	if err != nil {
		return Request{}, err
	}
	defer release()

	req, epoch, err := b.prepare(requestID, StatusCompleted)
	if err != nil {
		return Request{}, err
	}
	b.loadEarnings(ctx)
	if err := b.repo.SubmitRating(ctx, sub); err != nil {
		logger.CtxWarn(ctx, "submit rating failed", "request_id", requestID, "error", err)
		return Request{}, err
	}

	req.Status = StatusCompleted
	earned := b.earnings.CompletionEarnings()
	if !b.apply(epoch, req, func(tx *credits.Tx) { tx.Credit(earned) }) {
		return Request{}, ErrStale
	}
	logger.CtxInfo(ctx, "interview rated", "request_id", requestID, "earned", earned)

	if _, err := b.ledger.Refresh(ctx); err != nil {
		logger.CtxWarn(ctx, "balance refresh after rating failed", "error", err)
	}
	return req, nil
}

// Reset clears the board; late responses are discarded.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.epoch++
	b.tab = TabAvailable
	b.shown = nil
	b.known = make(map[string]Request)
}

// earningsLoader is an EarningsSource that can fetch its table from the backend.
type earningsLoader interface {
	Load(ctx context.Context) (credits.CostTable, error)
}

// discover looks up a request the board has not seen yet, as happens when an
// action arrives before any list load of this session. Both lists are read;
// entries already on the board are kept as they are.
func (b *Board) discover(ctx context.Context, requestID string) error {
	if _, ok := b.Get(requestID); ok {
		return nil
	}
	b.mu.Lock()
	epoch := b.epoch
	b.mu.Unlock()

	var available, mine []Request
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		available, err = b.repo.Available(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		mine, err = b.repo.Mine(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("look up request %s: %w", requestID, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if epoch != b.epoch {
		return ErrStale
	}
	for _, r := range append(available, mine...) {
		if r.RequestID == "" {
			continue
		}
		if _, ok := b.known[r.RequestID]; !ok {
			b.known[r.RequestID] = r
		}
	}
	return nil
}

func (b *Board) loadEarnings(ctx context.Context) {
	l, ok := b.earnings.(earningsLoader)
	if !ok {
		return
	}
	if _, err := l.Load(ctx); err != nil {
		logger.CtxWarn(ctx, "cost table load failed, using current earnings", "error", err)
	}
}

func (b *Board) prepare(requestID string, to Status) (Request, uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.known[requestID]
	if !ok {
		return Request{}, 0, ErrNotFound
	}
	if _, err := Transition(req.Status, to); err != nil {
		return Request{}, 0, err
	}
	return req, b.epoch, nil
}

// apply stores the acknowledged request and recomputes the visible tab.
// credit, when set, runs in the same critical section as the status change.
func (b *Board) apply(epoch uint64, req Request, credit func(tx *credits.Tx)) bool {
	applied := false
	b.ledger.Atomic(func(tx *credits.Tx) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if epoch != b.epoch {
			return
		}
		b.known[req.RequestID] = req

		shown := make([]Request, 0, len(b.shown)+1)
		replaced := false
		for _, r := range b.shown {
			if r.RequestID == req.RequestID {
				r = req
				replaced = true
			}
			if r.Status == b.tab.Status() {
				shown = append(shown, r)
			}
		}
		if !replaced && req.Status == b.tab.Status() {
			shown = append(shown, req)
		}
		b.shown = shown

		if credit != nil {
			credit(tx)
		}
		applied = true
	})
	return applied
}
