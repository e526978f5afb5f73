// Package oauth talks to the external identity provider. Providers return
// identity facts only; profile and session handling happen elsewhere.
package oauth

import (
	"context"

	"github.com/tazhibayda/markpad/internal/domain"
)

type Provider interface {
	// Name is the path segment used in /auth/{name}/... routes.
	Name() string
	// AuthURL is where the browser is sent to sign in; state comes back on the callback.
	AuthURL(state string) string
	// Exchange trades the callback code for a verified identity.
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}
