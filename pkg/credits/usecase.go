package credits

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/logger"
	"github.com/artem13815/hr/portal/pkg/validation"
)

// Costs holds the cost table of a session, starting from DefaultCosts.
type Costs struct {
	repo SettingsRepository

	mu     sync.RWMutex
	table  CostTable
	loaded bool
}

func NewCosts(repo SettingsRepository) *Costs {
	return &Costs{repo: repo, table: DefaultCosts()}
}

// Load fetches settings once per session; failures keep the current table.
func (c *Costs) Load(ctx context.Context) (CostTable, error) {
	c.mu.RLock()
	if c.loaded {
		t := c.table
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	s, err := c.repo.GetSettings(ctx)
	if err != nil {
		return c.Table(), err
	}
	c.Set(s)
	return c.Table(), nil
}

func (c *Costs) Set(s Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = s.Costs()
	c.loaded = true
}

func (c *Costs) Table() CostTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

func (c *Costs) ContactReveal() int64 { return c.Table().ContactReveal }

func (c *Costs) CompletionEarnings() int64 { return c.Table().CompletionEarnings }

// SettingsPage is the admin credit settings screen.
type SettingsPage struct {
	repo  SettingsRepository
	stats StatsRepository
	costs *Costs
	gate  inflight.Gate

	mu       sync.Mutex
	settings Settings
	loaded   bool
}

// NewSettingsPage builds the page. costs may be nil; when set it follows saved settings.
func NewSettingsPage(repo SettingsRepository, stats StatsRepository, costs *Costs) *SettingsPage {
	return &SettingsPage{repo: repo, stats: stats, costs: costs}
}

func (p *SettingsPage) Load(ctx context.Context) (Settings, error) {
	s, err := p.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	p.mu.Lock()
	p.settings = s
	p.loaded = true
	p.mu.Unlock()
	if p.costs != nil {
		p.costs.Set(s)
	}
	return s, nil
}

// Current returns the last loaded settings.
func (p *SettingsPage) Current() (Settings, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings, p.loaded
}

// Save validates and stores s, then reloads. On any failure the page keeps
// the settings it had before the call.
func (p *SettingsPage) Save(ctx context.Context, s Settings) (Settings, error) {
	if err := validation.Struct(s); err != nil {
		return Settings{}, err
	}

	var saved Settings
	err := p.gate.Run(func() error {
		if err := p.repo.PutSettings(ctx, s); err != nil {
			return fmt.Errorf("put settings: %w", err)
		}
		reloaded, err := p.Load(ctx)
		if err != nil {
			logger.CtxWarn(ctx, "settings reload after save failed", "error", err)
			p.mu.Lock()
			p.settings = s
			p.loaded = true
			p.mu.Unlock()
			if p.costs != nil {
				p.costs.Set(s)
			}
			reloaded = s
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return saved, nil
}

func (p *SettingsPage) Saving() bool { return p.gate.Busy() }

// Stats fetches both counters concurrently. Any failure yields zeros.
func (p *SettingsPage) Stats(ctx context.Context) Stats {
	var st Stats
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := p.stats.UsersTotal(egCtx)
		st.TotalUsers = n
		return err
	})
	eg.Go(func() error {
		n, err := p.stats.TransactionsTotal(egCtx)
		st.TotalTransactions = n
		return err
	})
	if err := eg.Wait(); err != nil {
		logger.CtxWarn(ctx, "credit stats unavailable", "error", err)
		return Stats{}
	}
	return st
}
