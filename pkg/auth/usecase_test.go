package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/apiclient"
)

type fakeAuthn struct {
	res   LoginResult
	err   error
	calls int
}

func (f *fakeAuthn) Login(ctx context.Context, email, password string) (LoginResult, error) {
	f.calls++
	return f.res, f.err
}

type mapSessions struct {
	mu sync.Mutex
	m  map[string]Session
}

func newMapSessions() *mapSessions { return &mapSessions{m: map[string]Session{}} }

func (r *mapSessions) Save(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[s.ID] = s
	return nil
}

func (r *mapSessions) Get(ctx context.Context, id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *mapSessions) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

type fixedExpiry struct{ exp time.Time }

func (f fixedExpiry) ExpiresAt(string) (time.Time, bool) { return f.exp, !f.exp.IsZero() }

func TestLogin_CreatesSessionWithLanding(t *testing.T) {
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{ID: "u1", Role: RoleEmployer}}}
	repo := newMapSessions()
	svc := NewSessionService(authn, repo, nil, time.Hour)

	sess, landing, err := svc.Login(context.Background(), "e@x.io", "pw", RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, "/employer/dashboard", landing)
	assert.Equal(t, "tok", sess.Token())
	assert.NotEmpty(t, sess.ID)

	got, err := svc.Resolve(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.User, got.User)
}

func TestLogin_RoleMismatchCreatesNoSession(t *testing.T) {
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{ID: "u1", Role: RoleJobseeker}}}
	repo := newMapSessions()
	svc := NewSessionService(authn, repo, nil, time.Hour)

	_, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleEmployer)
	var le LoginError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "This account is not registered as a employer. Please use the correct login page.", le.Error())
	assert.Empty(t, repo.m)
}

func TestLogin_AdminPortalAcceptsAnyRole(t *testing.T) {
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{ID: "u1", Role: RoleInterviewer}}}
	svc := NewSessionService(authn, newMapSessions(), nil, time.Hour)

	_, landing, err := svc.Login(context.Background(), "e@x.io", "pw", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "/interviewer/dashboard", landing)
}

func TestLogin_BackendMessageVerbatim(t *testing.T) {
	authn := &fakeAuthn{err: &apiclient.Error{Status: 401, Kind: apiclient.KindUnauthorized, Message: "Incorrect email or password"}}
	svc := NewSessionService(authn, newMapSessions(), nil, time.Hour)

	_, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleJobseeker)
	assert.Equal(t, LoginError("Incorrect email or password"), err)

	_, _, err = svc.Login(context.Background(), "", "pw", RoleJobseeker)
	assert.IsType(t, LoginError(""), err)
	assert.Equal(t, 1, authn.calls)
}

func TestLogin_TokenExpiryCapsSession(t *testing.T) {
	exp := time.Now().UTC().Add(10 * time.Minute)
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{Role: RoleJobseeker}}}
	svc := NewSessionService(authn, newMapSessions(), fixedExpiry{exp: exp}, 24*time.Hour)

	sess, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleJobseeker)
	require.NoError(t, err)
	assert.Equal(t, exp, sess.ExpiresAt)
}

func TestLogin_AlreadyExpiredToken(t *testing.T) {
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{Role: RoleJobseeker}}}
	repo := newMapSessions()
	svc := NewSessionService(authn, repo, fixedExpiry{exp: time.Now().Add(-time.Minute)}, time.Hour)

	_, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleJobseeker)
	assert.IsType(t, LoginError(""), err)
	assert.Empty(t, repo.m)
}

func TestResolve_ExpiredAndUnknown(t *testing.T) {
	repo := newMapSessions()
	svc := NewSessionService(&fakeAuthn{}, repo, nil, time.Hour)
	var torn []string
	svc.OnLogout(func(id string) { torn = append(torn, id) })

	_ = repo.Save(context.Background(), Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)})

	_, err := svc.Resolve(context.Background(), "old")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, []string{"old"}, torn)

	_, err = svc.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_TearsDown(t *testing.T) {
	authn := &fakeAuthn{res: LoginResult{AccessToken: "tok", User: User{Role: RoleJobseeker}}}
	repo := newMapSessions()
	svc := NewSessionService(authn, repo, nil, time.Hour)
	var torn []string
	svc.OnLogout(func(id string) { torn = append(torn, id) })

	sess, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleJobseeker)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), sess.ID))

	assert.Equal(t, []string{sess.ID}, torn)
	_, err = svc.Resolve(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogin_TransportErrorPassesThrough(t *testing.T) {
	netErr := &apiclient.Error{Kind: apiclient.KindTimeout, Message: "request failed: timeout", Err: context.DeadlineExceeded}
	svc := NewSessionService(&fakeAuthn{err: netErr}, newMapSessions(), nil, time.Hour)

	_, _, err := svc.Login(context.Background(), "e@x.io", "pw", RoleJobseeker)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
