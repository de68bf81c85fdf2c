package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserExists is returned when the email is already registered with the identity provider.
	ErrUserExists = errors.New("identity: user already exists")
	// ErrUserNotFound is returned when the identity provider does not know the user.
	ErrUserNotFound = errors.New("identity: user not found")
)

// InvitedUser is the account created for an invitation.
type InvitedUser struct {
	ID    uuid.UUID
	Email string
	// Link lets the invitee set a password. Delivering it is left to the caller.
	Link string
}

// Provider administers accounts at the token-issuing identity provider.
type Provider interface {
	InviteUser(ctx context.Context, email string) (InvitedUser, error)
	SetPassword(ctx context.Context, userID uuid.UUID, password string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
