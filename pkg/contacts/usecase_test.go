package contacts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/credits"
	"github.com/artem13815/hr/portal/pkg/inflight"
)

type fakeRepo struct {
	calls   atomic.Int32
	contact Contact
	err     error
	access  []Access
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeRepo) Reveal(ctx context.Context, id string) (Contact, error) {
	f.calls.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return Contact{}, f.err
	}
	c := f.contact
	c.JobseekerID = id
	return c, nil
}

func (f *fakeRepo) MyAccess(ctx context.Context) ([]Access, error) {
	return f.access, nil
}

type fixedCost int64

func (c fixedCost) ContactReveal() int64 { return int64(c) }

type noBalance struct{}

func (noBalance) Balance(context.Context) (int64, error) { return 0, nil }

func newRevealer(repo Repository, balance, cost int64) (*Revealer, *credits.Ledger) {
	l := credits.NewLedger(noBalance{})
	l.Set(balance)
	return NewRevealer(repo, l, fixedCost(cost)), l
}

func TestReveal_InsufficientCreditsMakesNoCall(t *testing.T) {
	repo := &fakeRepo{}
	r, l := newRevealer(repo, 5000, 10000)

	_, charged, err := r.Reveal(context.Background(), "js-1")

	var ice *InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, "Insufficient credits. You need 10000 credits to reveal contact.", ice.Error())
	assert.False(t, charged)
	assert.Equal(t, int32(0), repo.calls.Load())
	assert.Equal(t, int64(5000), l.Balance())
	assert.Equal(t, StateHidden, r.State("js-1"))
}

func TestReveal_SucceedsAndIsIdempotent(t *testing.T) {
	repo := &fakeRepo{contact: Contact{Email: "jane@example.com", Phone: "+91 98"}}
	r, l := newRevealer(repo, 15000, 10000)

	c, charged, err := r.Reveal(context.Background(), "js-1")
	require.NoError(t, err)
	assert.True(t, charged)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Equal(t, StateRevealed, r.State("js-1"))
	assert.Equal(t, int64(5000), l.Balance())

	again, charged, err := r.Reveal(context.Background(), "js-1")
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, c, again)
	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, int64(5000), l.Balance())
}

func TestReveal_ServerRejectionRollsBack(t *testing.T) {
	for _, kind := range []apiclient.Kind{apiclient.KindInsufficientCredits, apiclient.KindConflict, apiclient.KindValidation, apiclient.KindTimeout} {
		t.Run(string(kind), func(t *testing.T) {
			repo := &fakeRepo{err: &apiclient.Error{Kind: kind, Message: "Insufficient credits on server"}}
			r, l := newRevealer(repo, 15000, 10000)

			_, charged, err := r.Reveal(context.Background(), "js-1")
			require.Error(t, err)
			assert.False(t, charged)
			assert.Equal(t, "Insufficient credits on server", apiclient.MessageOf(err, ""))
			assert.Equal(t, int64(15000), l.Balance())
			assert.Equal(t, StateHidden, r.State("js-1"))
			assert.Equal(t, StateHidden, r.View("js-1").State)
		})
	}
}

func TestReveal_SecondAttemptWhileInFlight(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{}), entered: make(chan struct{}, 1), contact: Contact{Email: "a@b.c"}}
	r, l := newRevealer(repo, 30000, 10000)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, err := r.Reveal(context.Background(), "js-1")
		assert.NoError(t, err)
	}()
	<-repo.entered
	assert.True(t, r.Pending("js-1"))

	_, _, err := r.Reveal(context.Background(), "js-1")
	assert.ErrorIs(t, err, inflight.ErrInProgress)

	close(repo.block)
	wg.Wait()
	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, int64(20000), l.Balance())
}

func TestReveal_ResetDropsLateResponse(t *testing.T) {
	repo := &fakeRepo{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	r, l := newRevealer(repo, 15000, 10000)

	done := make(chan error, 1)
	go func() {
		_, _, err := r.Reveal(context.Background(), "js-1")
		done <- err
	}()
	<-repo.entered
	r.Reset()
	close(repo.block)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, int64(15000), l.Balance())
	assert.Equal(t, StateHidden, r.State("js-1"))
}

func TestSync_MarksAccessListRevealed(t *testing.T) {
	repo := &fakeRepo{access: []Access{{JobseekerID: "js-2", ValidUntil: "2027-01-01"}, {}}}
	r, l := newRevealer(repo, 0, 10000)

	require.NoError(t, r.Sync(context.Background()))
	assert.Equal(t, StateRevealed, r.State("js-2"))
	assert.Len(t, r.Revealed(), 1)

	// already revealed via access list: no charge even with zero balance
	_, charged, err := r.Reveal(context.Background(), "js-2")
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, int32(0), repo.calls.Load())
	assert.Equal(t, int64(0), l.Balance())
}

func TestReveal_MissingID(t *testing.T) {
	r, _ := newRevealer(&fakeRepo{}, 15000, 10000)
	_, _, err := r.Reveal(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingJobseeker)
}

type backendBalance struct {
	total int64
	err   error
}

func (b backendBalance) Balance(context.Context) (int64, error) { return b.total, b.err }

type settingsRepo struct{ s credits.Settings }

func (r settingsRepo) GetSettings(context.Context) (credits.Settings, error) { return r.s, nil }
func (r settingsRepo) PutSettings(context.Context, credits.Settings) error   { return nil }

func TestReveal_BeforeAnyPageLoadUsesBackendState(t *testing.T) {
	repo := &fakeRepo{
		contact: Contact{Email: "j@example.com"},
		access:  []Access{{JobseekerID: "js-2", ValidUntil: "2027-01-01"}},
	}
	l := credits.NewLedger(backendBalance{total: 15000})
	costs := credits.NewCosts(settingsRepo{s: credits.Settings{ContactRevealCost: 8000}})
	r := NewRevealer(repo, l, costs)

	_, charged, err := r.Reveal(context.Background(), "js-1")
	require.NoError(t, err)
	assert.True(t, charged)
	assert.Equal(t, int64(7000), l.Balance())

	// доступ из my-access подтянулся вместе с балансом: повторного списания нет
	_, charged, err = r.Reveal(context.Background(), "js-2")
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, int32(1), repo.calls.Load())
	assert.Equal(t, int64(7000), l.Balance())
}

func TestReveal_UnloadedBalanceFailureMakesNoCall(t *testing.T) {
	repo := &fakeRepo{}
	down := errors.New("balance endpoint down")
	r := NewRevealer(repo, credits.NewLedger(backendBalance{err: down}), fixedCost(10000))

	_, charged, err := r.Reveal(context.Background(), "js-1")
	assert.ErrorIs(t, err, down)
	assert.False(t, charged)
	assert.Equal(t, int32(0), repo.calls.Load())
}
