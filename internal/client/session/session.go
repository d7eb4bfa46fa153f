// Package session keeps the signed-in user's credentials: the access token,
// the refresh token and the cached user record.
//
// All reads and writes of the three keys go through Session, so the HTTP
// client, the services and the CLI never touch the underlying Store directly.
//
// The keys are not guaranteed to change together. Save writes the access
// token last and Clear removes it first; a state without an access token is
// treated as signed out regardless of the other two keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// Keys lists every credential key in clearing order.
var Keys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

var ErrNoTokens = errors.New("token pair is incomplete")

type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) getString(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(v), nil
}

// AccessToken returns the stored access token, "" when absent.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh token, "" when absent.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyRefreshToken)
}

// User returns the cached user record, nil when absent.
func (s *Session) User(ctx context.Context) (*models.User, error) {
	v, err := s.store.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyUser, err)
	}
	if len(v) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

// IsAuthenticated reports whether an access token is stored.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	tok, err := s.AccessToken(ctx)
	return err == nil && tok != ""
}

// Save stores a fresh token pair and the user record. A nil user drops any
// cached record so it cannot outlive the account it belonged to.
func (s *Session) Save(ctx context.Context, tokens models.TokenPair, user *models.User) error {
	if tokens.Access == "" || tokens.Refresh == "" {
		return ErrNoTokens
	}

	values := map[string][]byte{
		KeyRefreshToken: []byte(tokens.Refresh),
		KeyAccessToken:  []byte(tokens.Access),
	}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		values[KeyUser] = b
	}

	if bs, ok := s.store.(BatchStore); ok {
		if user == nil {
			if err := bs.DeleteMany(ctx, []string{KeyUser}); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
		}
		if err := bs.SetMany(ctx, values); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	}

	for _, key := range []string{KeyRefreshToken, KeyUser, KeyAccessToken} {
		v, ok := values[key]
		if !ok {
			if err := s.store.Delete(ctx, key); err != nil {
				return fmt.Errorf("save session: drop %s: %w", key, err)
			}
			continue
		}
		if err := s.store.Set(ctx, key, v); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetAccessToken replaces the access token after a refresh.
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, KeyAccessToken, []byte(token)); err != nil {
		return fmt.Errorf("save %s: %w", KeyAccessToken, err)
	}
	return nil
}

// SetRefreshToken replaces the refresh token when the backend rotates it.
func (s *Session) SetRefreshToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, KeyRefreshToken, []byte(token)); err != nil {
		return fmt.Errorf("save %s: %w", KeyRefreshToken, err)
	}
	return nil
}

// SetUser replaces the cached user record.
func (s *Session) SetUser(ctx context.Context, user *models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, KeyUser, b); err != nil {
		return fmt.Errorf("save %s: %w", KeyUser, err)
	}
	return nil
}

// Clear removes all three keys. Clearing an already empty session is a no-op.
// Every key is attempted even if an earlier delete fails.
func (s *Session) Clear(ctx context.Context) error {
	if bs, ok := s.store.(BatchStore); ok {
		if err := bs.DeleteMany(ctx, Keys); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}

	var errs []error
	for _, key := range Keys {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
