package adapthttp

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDC configures the optional single-sign-on login. Zero value means SSO is
// disabled and only local password login is offered.
type OIDC struct {
	Enabled  bool
	Provider *oidc.Provider
	OAuth2   oauth2.Config
}

// NewOIDC performs provider discovery and builds the auth-code flow config.
// An empty issuer disables SSO without error.
func NewOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDC, error) {
	if issuer == "" {
		return OIDC{}, nil
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDC{}, err
	}
	return OIDC{
		Enabled:  true,
		Provider: provider,
		OAuth2: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
