package client

import (
	"context"

	"github.com/pt428/recipes/internal/logging"
)

// TokenStore is the part of the session store the client needs.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Remove(ctx context.Context) error
}

// Redirector moves the user interface to another route.
type Redirector interface {
	Redirect(path string)
}

// UnauthorizedPolicy runs once for every 401 response, before the error is
// returned to the caller.
type UnauthorizedPolicy interface {
	OnUnauthorized(ctx context.Context)
}

// UnauthorizedFunc adapts a function to UnauthorizedPolicy.
type UnauthorizedFunc func(ctx context.Context)

func (f UnauthorizedFunc) OnUnauthorized(ctx context.Context) { f(ctx) }

// ClearTokenAndRedirect drops the stored token and sends the user to the
// root route. redirector may be nil.
func ClearTokenAndRedirect(tokens TokenStore, redirector Redirector, logger logging.Logger) UnauthorizedPolicy {
	if logger == nil {
		logger = logging.Discard()
	}
	return UnauthorizedFunc(func(ctx context.Context) {
		if err := tokens.Remove(ctx); err != nil {
			logger.Error(ctx, "failed to clear token after 401", "error", err)
		}
		if redirector != nil {
			redirector.Redirect("/")
		}
	})
}
