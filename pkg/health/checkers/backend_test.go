package checkers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/hr/portal/pkg/apiclient"
)

func TestBackendChecker(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}))
	defer srv.Close()

	c := NewBackendChecker(apiclient.New(srv.URL), "/auth/me")
	assert.Equal(t, "backend", c.Name())
	assert.NoError(t, c.Check(context.Background()))

	status = http.StatusServiceUnavailable
	assert.Error(t, c.Check(context.Background()))
}

func TestBackendChecker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Error(t, NewBackendChecker(apiclient.New(url), "/auth/me").Check(context.Background()))
}
