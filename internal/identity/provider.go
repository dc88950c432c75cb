// Package identity wraps the external authentication service. The rest of
// the application only consumes "current user or none", sign-in/up/out and
// the admin-role lookup.
package identity

import (
	"context"
	"time"
)

// User is the session identity. UID is the stable key every per-user
// document is addressed by.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	IDToken      string    `json:"idToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Provider is the identity service contract.
type Provider interface {
	// SignIn authenticates an existing account. Failures come back as
	// *AuthError.
	SignIn(ctx context.Context, email, password string) (User, error)
	// SignUp creates an account and signs it in.
	SignUp(ctx context.Context, name, email, password string) (User, error)
	// SignOut ends the session and clears the cached user.
	SignOut(ctx context.Context) error
	// CurrentUser returns the signed-in user, if any.
	CurrentUser() (User, bool)
	// OnAuthStateChange registers fn to run on every session change. fn is
	// invoked immediately with the current state; the returned function
	// removes the listener.
	OnAuthStateChange(fn func(*User)) func()
	// IsAdmin reports whether uid has the admin role.
	IsAdmin(ctx context.Context, uid string) (bool, error)
}
