package credits

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/validation"
)

type fakeSettings struct {
	stored Settings
	getErr error
	putErr error
	puts   int
	onPut  func()
}

func (f *fakeSettings) GetSettings(ctx context.Context) (Settings, error) {
	return f.stored, f.getErr
}

func (f *fakeSettings) PutSettings(ctx context.Context, s Settings) error {
	f.puts++
	if f.onPut != nil {
		f.onPut()
	}
	if f.putErr != nil {
		return f.putErr
	}
	f.stored = s
	return nil
}

type fakeStats struct {
	users, txs       int64
	usersErr, txsErr error
}

func (f fakeStats) UsersTotal(ctx context.Context) (int64, error)        { return f.users, f.usersErr }
func (f fakeStats) TransactionsTotal(ctx context.Context) (int64, error) { return f.txs, f.txsErr }

func TestCosts_DefaultsUntilLoaded(t *testing.T) {
	repo := &fakeSettings{getErr: errors.New("down")}
	c := NewCosts(repo)

	table, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, DefaultCosts(), table)
	assert.Equal(t, int64(10000), c.ContactReveal())
	assert.Equal(t, int64(500), c.CompletionEarnings())

	repo.getErr = nil
	repo.stored = Settings{ContactRevealCost: 8000, InterviewCompletionEarnings: 750}
	table, err = c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8000), table.ContactReveal)
	assert.Equal(t, int64(750), c.CompletionEarnings())
}

func TestSettings_ZeroRevealCostFallsBack(t *testing.T) {
	table := Settings{ContactRevealCost: 0, InterviewCompletionEarnings: 0}.Costs()
	assert.Equal(t, DefaultCosts().ContactReveal, table.ContactReveal)
	assert.Zero(t, table.CompletionEarnings)

	assert.Equal(t, int64(7000), Settings{ContactRevealCost: 7000}.Costs().ContactReveal)
}

func TestSettingsPage_SaveReloads(t *testing.T) {
	repo := &fakeSettings{stored: Settings{ContactRevealCost: 10000}}
	costs := NewCosts(repo)
	page := NewSettingsPage(repo, fakeStats{}, costs)

	_, err := page.Load(context.Background())
	require.NoError(t, err)

	saved, err := page.Save(context.Background(), Settings{ContactRevealCost: 12000, InterviewCompletionEarnings: 600})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), saved.ContactRevealCost)

	cur, ok := page.Current()
	require.True(t, ok)
	assert.Equal(t, saved, cur)
	assert.Equal(t, int64(12000), costs.ContactReveal())
}

func TestSettingsPage_FailedSaveKeepsLoaded(t *testing.T) {
	repo := &fakeSettings{stored: Settings{ContactRevealCost: 10000}}
	page := NewSettingsPage(repo, fakeStats{}, nil)
	_, _ = page.Load(context.Background())

	repo.putErr = errors.New("rejected")
	_, err := page.Save(context.Background(), Settings{ContactRevealCost: 1})
	require.Error(t, err)

	cur, _ := page.Current()
	assert.Equal(t, int64(10000), cur.ContactRevealCost)
}

func TestSettingsPage_NegativeValuesRejectedLocally(t *testing.T) {
	repo := &fakeSettings{}
	page := NewSettingsPage(repo, fakeStats{}, nil)

	_, err := page.Save(context.Background(), Settings{ContactRevealCost: -1, ReferralBonus: -5})
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "contact_reveal_cost")
	assert.Contains(t, verr.Fields, "referral_bonus")
	assert.Equal(t, 0, repo.puts)
}

func TestSettingsPage_SingleInFlightSave(t *testing.T) {
	repo := &fakeSettings{}
	page := NewSettingsPage(repo, fakeStats{}, nil)

	var nested error
	repo.onPut = func() {
		assert.True(t, page.Saving())
		_, nested = page.Save(context.Background(), Settings{})
	}
	_, err := page.Save(context.Background(), Settings{ContactRevealCost: 5})
	require.NoError(t, err)
	assert.Error(t, nested)
	assert.Equal(t, 1, repo.puts)
	assert.False(t, page.Saving())
}

func TestSettingsPage_Stats(t *testing.T) {
	page := NewSettingsPage(&fakeSettings{}, fakeStats{users: 42, txs: 1234}, nil)
	assert.Equal(t, Stats{TotalUsers: 42, TotalTransactions: 1234}, page.Stats(context.Background()))

	page = NewSettingsPage(&fakeSettings{}, fakeStats{users: 42, txsErr: errors.New("forbidden")}, nil)
	assert.Equal(t, Stats{}, page.Stats(context.Background()))
}

func TestPackages_Catalog(t *testing.T) {
	pkgs := Packages()
	require.Len(t, pkgs, 3)
	assert.Equal(t, "starter", pkgs[0].ID)
	assert.Equal(t, int64(50000), pkgs[0].Credits)
	assert.Equal(t, int64(199), pkgs[0].PriceINR)
	assert.True(t, pkgs[1].Popular)
	assert.Equal(t, 17, pkgs[1].SavingsPct)
	assert.Equal(t, int64(300000), pkgs[2].Credits)
	assert.InDelta(t, 0.00398, pkgs[0].PerCredit(), 1e-9)
	assert.InDelta(t, 0.003, pkgs[2].PerCredit(), 1e-9)

	// каталог копируется: изменения вызывающего не портят его
	pkgs[0].Credits = 1
	assert.Equal(t, int64(50000), Packages()[0].Credits)

	// без ставки в каталоге цена за кредит считается из цены пакета
	assert.InDelta(t, 0.5, Package{Credits: 10, PriceINR: 5}.PerCredit(), 1e-9)

	assert.ErrorIs(t, Purchase("growth"), ErrPaymentsUnavailable)
	assert.ErrorIs(t, Purchase("platinum"), ErrUnknownPackage)

	_, err := LoadPackages([]byte("packages:\n  - name: broken\n"))
	assert.Error(t, err)
}
