package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the outcome of one checker.
type Status struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// Report aggregates every checker; Ready is true only when all passed.
type Report struct {
	Ready  bool     `json:"ready"`
	Checks []Status `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
	Report(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, st := range s.Report(ctx).Checks {
		if !st.OK {
			return fmt.Errorf("%s: %s", st.Name, st.Error)
		}
	}
	return nil
}

// Report runs all checkers concurrently; the order of Checks follows registration.
func (s *service) Report(ctx context.Context) Report {
	statuses := make([]Status, len(s.checkers))
	var (
		eg errgroup.Group
		mu sync.Mutex
	)
	for i, ch := range s.checkers {
		eg.Go(func() error {
			started := time.Now()
			err := ch.Check(ctx)
			st := Status{Name: ch.Name(), OK: err == nil, Latency: time.Since(started).String()}
			if err != nil {
				st.Error = err.Error()
			}
			mu.Lock()
			statuses[i] = st
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	rep := Report{Ready: true, Checks: statuses}
	for _, st := range statuses {
		if !st.OK {
			rep.Ready = false
		}
	}
	return rep
}
