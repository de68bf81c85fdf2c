package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAudience is the audience pinned on HS256 bearer tokens.
const DefaultAudience = "authenticated"

// Claims are the token fields the resolver relies on.
type Claims struct {
	Subject string
	Email   string
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenClaims is the JWT payload accepted by HS256Verifier and produced by the devtoken builder.
type TokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HS256Verifier checks symmetric HS256 tokens with a pinned audience.
type HS256Verifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

// NewHS256Verifier builds a verifier; an empty audience defaults to DefaultAudience.
func NewHS256Verifier(secret, audience string) (*HS256Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if audience == "" {
		audience = DefaultAudience
	}
	return &HS256Verifier{
		secret:   []byte(secret),
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

func (v *HS256Verifier) Verify(_ context.Context, token string) (Claims, error) {
	var claims TokenClaims
	if _, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return Claims{}, fmt.Errorf("verify token: %w", err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, errors.New("verify token: subject missing")
	}
	return Claims{Subject: claims.Subject, Email: claims.Email}, nil
}

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseVerifier validates Firebase ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier wraps a Firebase auth client.
func NewFirebaseVerifier(client *firebaseauth.Client) *FirebaseVerifier {
	if client == nil {
		panic("FirebaseVerifier requires client")
	}
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Claims{}, fmt.Errorf("verify firebase token: %w", err)
	}
	email, _ := t.Claims["email"].(string)
	return Claims{Subject: t.UID, Email: email}, nil
}

// SubjectUUID maps a token subject onto a user id. UUID subjects are used as-is; opaque identity-provider
// uids are mapped deterministically.
func SubjectUUID(subject string) uuid.UUID {
	if id, err := uuid.Parse(subject); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("subject:"+subject))
}

// ExtractBearerToken returns the token of an Authorization: Bearer header.
func ExtractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	const prefix = "Bearer "
	// Case-insensitive prefix match.
	if len(authHeader) < len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(prefix):])
	return token, token != ""
}
