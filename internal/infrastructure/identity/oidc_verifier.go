package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

var ErrInvalidIDToken = errors.New("invalid id_token")

// OIDCVerifier checks ID tokens issued by an OpenID Connect provider and
// maps their claims onto an Identity.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type idClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// NewOIDCVerifier discovers the provider configuration at issuerURL.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, err
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawIDToken string) (*entity.Identity, error) {
	tok, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, ErrInvalidIDToken
	}
	var c idClaims
	if err := tok.Claims(&c); err != nil {
		return nil, ErrInvalidIDToken
	}
	if c.Sub == "" {
		return nil, ErrInvalidIDToken
	}
	return ClaimsToIdentity(c.Sub, c.Email, c.GivenName, c.FamilyName, c.Name, c.Picture), nil
}

// ClaimsToIdentity builds an Identity, splitting the full name when the
// provider does not send given/family names.
func ClaimsToIdentity(sub, email, given, family, full, picture string) *entity.Identity {
	if given == "" && family == "" && full != "" {
		parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
		given = parts[0]
		if len(parts) == 2 {
			family = parts[1]
		}
	}
	return &entity.Identity{
		Subject:         sub,
		Email:           email,
		FirstName:       given,
		LastName:        family,
		ProfileImageURL: picture,
	}
}
