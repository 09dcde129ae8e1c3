package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/apiclient"
)

type fakeIdentity struct {
	user User
	err  error
}

func (f fakeIdentity) Me(ctx context.Context) (User, error) { return f.user, f.err }

type fakeBalance struct {
	total int64
	err   error
	calls int
}

func (f *fakeBalance) Refresh(ctx context.Context) (int64, error) {
	f.calls++
	return f.total, f.err
}

var unauthorized = &apiclient.Error{Status: 401, Kind: apiclient.KindUnauthorized, Message: "Not authenticated"}

func TestGuard_AllowsRole(t *testing.T) {
	bal := &fakeBalance{total: 500}
	g := NewGuard(fakeIdentity{user: User{ID: "e1", Role: RoleEmployer}}, bal)

	u, err := g.Enter(context.Background(), TalentSearch)
	require.NoError(t, err)
	assert.Equal(t, "e1", u.ID)
	assert.Equal(t, 1, bal.calls)
}

func TestGuard_WrongRole(t *testing.T) {
	g := NewGuard(fakeIdentity{user: User{Role: RoleJobseeker}}, &fakeBalance{})

	_, err := g.Enter(context.Background(), TalentSearch)
	var wr *WrongRoleError
	require.ErrorAs(t, err, &wr)
	assert.Equal(t, "Only employers can access talent search", wr.Message)
	assert.Equal(t, RoleJobseeker, wr.Role)
}

func TestGuard_Unauthenticated(t *testing.T) {
	g := NewGuard(fakeIdentity{err: unauthorized}, &fakeBalance{})
	_, err := g.Enter(context.Background(), AnyRole)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	g = NewGuard(fakeIdentity{user: User{Role: RoleAdmin}}, &fakeBalance{err: unauthorized})
	_, err = g.Enter(context.Background(), AdminOnly)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGuard_BalanceFailureIsNotFatal(t *testing.T) {
	g := NewGuard(fakeIdentity{user: User{Role: RoleInterviewer}}, &fakeBalance{err: errors.New("boom")})
	_, err := g.Enter(context.Background(), InterviewerOnly)
	assert.NoError(t, err)
}

func TestGuard_IdentityFailureIsGeneric(t *testing.T) {
	srvErr := &apiclient.Error{Status: 500, Kind: apiclient.KindServer, Message: "Internal Server Error"}
	g := NewGuard(fakeIdentity{err: srvErr}, nil)
	_, err := g.Enter(context.Background(), AnyRole)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, apiclient.KindServer, apiclient.KindOf(err))
}
