// Package session is the durable key-value store behind login persistence.
// It holds the {user, authToken, isLoggedIn} triple for each issued token
// so that auth and address bootstrapping survive gateway restarts.
package session

import (
	"context"
	"errors"
)

// Keys stored per login session.
const (
	KeyUser       = "user"
	KeyAuthToken  = "authToken"
	KeyIsLoggedIn = "isLoggedIn"
)

var ErrNotFound = errors.New("session key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}
