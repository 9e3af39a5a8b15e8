package hub

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"sealdm/internal/domain"
)

// TokenAuthenticator verifies the session credentials presented on channel
// open and API calls. Tokens are "<identity>.<mac>" where mac is
// HMAC-SHA256 over the identity id under the hub secret; in a deployment
// fronted by a real identity provider this is swapped for its verifier via
// the domain.Authenticator interface.
type TokenAuthenticator struct {
	secret []byte
}

// NewTokenAuthenticator returns an authenticator bound to secret.
func NewTokenAuthenticator(secret []byte) *TokenAuthenticator {
	return &TokenAuthenticator{secret: append([]byte(nil), secret...)}
}

// Issue mints a credential for id. Used by the enrollment flow and tests.
func (a *TokenAuthenticator) Issue(id domain.IdentityID) string {
	return string(id) + "." + base64.RawURLEncoding.EncodeToString(a.mac(id))
}

// Verify checks a credential and returns the identity it was issued to.
// Any failure is domain.ErrUnauthorized; the caller closes the channel.
func (a *TokenAuthenticator) Verify(_ context.Context, credential string) (domain.IdentityID, error) {
	idPart, macPart, ok := strings.Cut(credential, ".")
	if !ok || idPart == "" {
		return "", domain.ErrUnauthorized
	}
	presented, err := base64.RawURLEncoding.DecodeString(macPart)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	id := domain.IdentityID(idPart)
	if !hmac.Equal(presented, a.mac(id)) {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

func (a *TokenAuthenticator) mac(id domain.IdentityID) []byte {
	h := hmac.New(sha256.New, a.secret)
	h.Write([]byte(id))
	return h.Sum(nil)
}

var _ domain.Authenticator = (*TokenAuthenticator)(nil)
