package identity

import (
	"context"
	"fmt"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// firebaseUsers is the subset of *firebaseauth.Client used for user administration.
type firebaseUsers interface {
	CreateUser(ctx context.Context, user *firebaseauth.UserToCreate) (*firebaseauth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *firebaseauth.UserToUpdate) (*firebaseauth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	PasswordResetLinkWithSettings(ctx context.Context, email string, settings *firebaseauth.ActionCodeSettings) (string, error)
}

// Firebase administers users through the Firebase Admin SDK. Accounts are created with the application user id
// as their uid so ID tokens carry it as the subject.
type Firebase struct {
	client      firebaseUsers
	redirectURL string
	newID       func() uuid.UUID
}

// NewFirebase wraps a Firebase auth client. redirectURL is where the password setup link continues to.
func NewFirebase(client *firebaseauth.Client, redirectURL string) *Firebase {
	if client == nil {
		panic("identity.NewFirebase requires client")
	}
	return newFirebase(client, redirectURL)
}

func newFirebase(client firebaseUsers, redirectURL string) *Firebase {
	return &Firebase{client: client, redirectURL: redirectURL, newID: uuid.New}
}

func (f *Firebase) InviteUser(ctx context.Context, email string) (InvitedUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	id := f.newID()

	params := (&firebaseauth.UserToCreate{}).UID(id.String()).Email(email).EmailVerified(false)
	if _, err := f.client.CreateUser(ctx, params); err != nil {
		if firebaseauth.IsEmailAlreadyExists(err) || firebaseauth.IsUIDAlreadyExists(err) {
			return InvitedUser{}, ErrUserExists
		}
		return InvitedUser{}, fmt.Errorf("create firebase user: %w", err)
	}

	var settings *firebaseauth.ActionCodeSettings
	if f.redirectURL != "" {
		settings = &firebaseauth.ActionCodeSettings{URL: f.redirectURL}
	}
	link, err := f.client.PasswordResetLinkWithSettings(ctx, email, settings)
	if err != nil {
		return InvitedUser{}, fmt.Errorf("generate invite link: %w", err)
	}
	return InvitedUser{ID: id, Email: email, Link: link}, nil
}

func (f *Firebase) SetPassword(ctx context.Context, userID uuid.UUID, password string) error {
	if _, err := f.client.UpdateUser(ctx, userID.String(), (&firebaseauth.UserToUpdate{}).Password(password)); err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update firebase user: %w", err)
	}
	return nil
}

func (f *Firebase) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := f.client.DeleteUser(ctx, userID.String()); err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete firebase user: %w", err)
	}
	return nil
}
