package devtoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
)

// Params captures the claims required to mint an HS256 token for local and CI environments.
// No environment variables are read so the builder stays deterministic for tooling.
type Params struct {
	Secret    string        // shared HS256 secret (AUTH_JWT_SECRET)
	UserID    string        // sub claim (required)
	Email     string        // email claim (required)
	Audience  string        // defaults to auth.DefaultAudience
	Issuer    string        // optional iss claim
	ExpiresIn time.Duration // relative expiry; default 1h if zero
}

// BuildHS256Token returns a signed token accepted by auth.HS256Verifier.
func BuildHS256Token(p Params, now time.Time) (string, error) {
	if strings.TrimSpace(p.Secret) == "" {
		return "", errors.New("secret is required")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return "", errors.New("userID is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return "", errors.New("email is required")
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	expiresIn := p.ExpiresIn
	if expiresIn == 0 {
		expiresIn = time.Hour
	}

	audience := p.Audience
	if strings.TrimSpace(audience) == "" {
		audience = auth.DefaultAudience
	}

	claims := auth.TokenClaims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    p.Issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.Secret))
}
