package checkers

import (
	"context"
	"time"

	"github.com/artem13815/hr/portal/pkg/apiclient"
)

// BackendChecker considers the REST backend up when it answers at all:
// a 4xx still proves it is reachable, only transport failures and 5xx count.
type BackendChecker struct {
	api  *apiclient.Client
	path string
}

func NewBackendChecker(api *apiclient.Client, path string) *BackendChecker {
	return &BackendChecker{api: api, path: path}
}

func (c *BackendChecker) Name() string { return "backend" }

func (c *BackendChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := c.api.Get(ctx, c.path, nil, nil)
	switch apiclient.KindOf(err) {
	case apiclient.KindTimeout, apiclient.KindNetwork, apiclient.KindServer:
		return err
	}
	return nil
}
