package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"qualifaize-web/internal/model"
)

// Identity is the locally held record for a logged-in user: the opaque
// credential plus the claims decoded from it. Signature verification is
// the backend's job; this client only reads the payload.
type Identity struct {
	Token     string
	Username  string
	UserID    string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func (id *Identity) Expired() bool {
	if id == nil || id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}

// DecodeIdentity extracts subject, user id and roles from the token
// payload without verifying the signature.
func DecodeIdentity(token string) (*Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, model.ErrMalformedToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrMalformedToken
	}

	identity := &Identity{Token: token}
	identity.Username, _ = claims["sub"].(string)
	identity.UserID, _ = claims["userId"].(string)
	identity.Roles = stringSlice(claims["roles"])

	if issued, err := claims.GetIssuedAt(); err == nil && issued != nil {
		identity.IssuedAt = issued.Time
	}
	if expires, err := claims.GetExpirationTime(); err == nil && expires != nil {
		identity.ExpiresAt = expires.Time
	}

	if identity.Username == "" {
		return nil, model.ErrMalformedToken
	}

	return identity, nil
}

func stringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
