package auth

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/logger"
)

const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// Access describes who may open a page and what the others are told.
type Access struct {
	Roles  []Role
	Denied string
}

var (
	AnyRole         = Access{}
	JobseekerOnly   = Access{Roles: []Role{RoleJobseeker}, Denied: "Only job seekers can access this page"}
	EmployerOnly    = Access{Roles: []Role{RoleEmployer}, Denied: "Only employers can access this page"}
	TalentSearch    = Access{Roles: []Role{RoleEmployer}, Denied: "Only employers can access talent search"}
	InterviewerOnly = Access{Roles: []Role{RoleInterviewer}, Denied: "Only interviewers can access this page"}
	AdminOnly       = Access{Roles: []Role{RoleAdmin}, Denied: "Only admins can access this page"}
)

func (a Access) Allows(r Role) bool {
	return len(a.Roles) == 0 || slices.Contains(a.Roles, r)
}

// WrongRoleError means the session is valid but the page belongs to another role.
type WrongRoleError struct {
	Role    Role
	Message string
}

func (e *WrongRoleError) Error() string {
	return fmt.Sprintf("role %s denied: %s", e.Role, e.Message)
}

// BalanceRefresher reloads the authoritative credit balance.
type BalanceRefresher interface {
	Refresh(ctx context.Context) (int64, error)
}

// Guard is the per-page entry check.
type Guard struct {
	identity IdentityRepository
	balance  BalanceRefresher
}

func NewGuard(identity IdentityRepository, balance BalanceRefresher) *Guard {
	return &Guard{identity: identity, balance: balance}
}

// Enter fetches identity and balance concurrently, then checks the role.
// A 401 from either call is ErrUnauthenticated. Other balance failures
// leave the cached balance as it was.
func (g *Guard) Enter(ctx context.Context, access Access) (User, error) {
	var me User
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		u, err := g.identity.Me(egCtx)
		if err != nil {
			if apiclient.Is(err, apiclient.KindUnauthorized) {
				return ErrUnauthenticated
			}
			return fmt.Errorf("auth/me: %w", err)
		}
		me = u
		return nil
	})
	if g.balance != nil {
		eg.Go(func() error {
			if _, err := g.balance.Refresh(egCtx); err != nil {
				if apiclient.Is(err, apiclient.KindUnauthorized) {
					return ErrUnauthenticated
				}
				logger.CtxWarn(ctx, "balance refresh failed on page entry", "error", err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return User{}, err
	}
	if !access.Allows(me.Role) {
		msg := access.Denied
		if msg == "" {
			msg = "You do not have access to this page"
		}
		return me, &WrongRoleError{Role: me.Role, Message: msg}
	}
	return me, nil
}
