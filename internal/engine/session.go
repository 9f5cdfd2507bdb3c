package engine

import (
	"context"
	"strings"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// SignIn records the session user. This is a local session record, not an
// authentication flow.
func (s *Service) SignIn(ctx context.Context, email, name string) (*AuthUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ValidationError{Fields: map[string]string{"email": "a valid email is required"}}
	}

	u := &AuthUser{Email: email, Name: strings.TrimSpace(name), Timestamp: s.now()}
	if err := s.kv.Set(ctx, storage.KeyAuthUser, u); err != nil {
		return nil, err
	}
	s.notify()
	return u, nil
}

// CurrentUser returns the session user, or nil when signed out.
func (s *Service) CurrentUser(ctx context.Context) (*AuthUser, error) {
	var u AuthUser
	ok, err := s.kv.Get(ctx, storage.KeyAuthUser, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// SignOut clears the session and the signed-out user's scoped data.
func (s *Service) SignOut(ctx context.Context) error {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u != nil {
		scoped := []string{
			storage.KeyActivities,
			storage.KeyTipsSaved,
			storage.KeyCalcInputs,
			storage.KeyEventProposals,
			storage.KeyEventsRSVP,
		}
		for _, logical := range scoped {
			if err := s.kv.Remove(ctx, storage.ScopedKey(logical, u.Email)); err != nil {
				return err
			}
		}
	}
	if err := s.kv.Remove(ctx, storage.KeyAuthUser); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Scope returns the storage scope for user-owned keys: the signed-in email,
// or the anonymous fallback.
func (s *Service) Scope(ctx context.Context) (string, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if u == nil {
		return storage.AnonymousScope, nil
	}
	return u.Email, nil
}

// requireUser returns the session user or ErrNotSignedIn.
func (s *Service) requireUser(ctx context.Context) (*AuthUser, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}
