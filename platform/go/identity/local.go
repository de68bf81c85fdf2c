package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Local keeps accounts in memory. It backs development setups that mint their own HS256 tokens.
type Local struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*localAccount
	byEmail map[string]uuid.UUID
	linkFor func(id uuid.UUID) string
}

type localAccount struct {
	email        string
	passwordHash []byte
}

// NewLocal builds an empty in-memory provider.
func NewLocal(redirectURL string) *Local {
	return &Local{
		byID:    map[uuid.UUID]*localAccount{},
		byEmail: map[string]uuid.UUID{},
		linkFor: func(id uuid.UUID) string {
			return strings.TrimRight(redirectURL, "/") + "?invite=" + id.String()
		},
	}
}

func (l *Local) InviteUser(_ context.Context, email string) (InvitedUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byEmail[email]; ok {
		return InvitedUser{}, ErrUserExists
	}
	id := uuid.New()
	l.byID[id] = &localAccount{email: email}
	l.byEmail[email] = id
	return InvitedUser{ID: id, Email: email, Link: l.linkFor(id)}, nil
}

func (l *Local) SetPassword(_ context.Context, userID uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	acct.passwordHash = hash
	return nil
}

func (l *Local) DeleteUser(_ context.Context, userID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	delete(l.byEmail, acct.email)
	delete(l.byID, userID)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (l *Local) CheckPassword(userID uuid.UUID, password string) bool {
	l.mu.Lock()
	acct, ok := l.byID[userID]
	l.mu.Unlock()
	if !ok || acct.passwordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) == nil
}
