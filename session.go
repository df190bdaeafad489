package jobtrack

import (
	"context"
	"sync"
)

// AuthStoreName is the registry name of the shared auth record
const AuthStoreName = "auth"

// AuthStore is the shared auth record UI code reads. Token is a snapshot
// taken when the store was created and refreshed on Logout or Refresh,
// subscribers are told whenever it changes.
type AuthStore struct {
	mu          sync.RWMutex
	token       string
	tokens      TokenStore
	navigator   Navigator
	loginPath   string
	subscribers []func(token string)
}

// NewAuthStore snapshots the current token of tokens
func NewAuthStore(ctx context.Context, tokens TokenStore, navigator Navigator, loginPath string) *AuthStore {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	token, _ := tokens.Get(ctx)
	return &AuthStore{
		token:     token,
		tokens:    tokens,
		navigator: navigator,
		loginPath: loginPath,
	}
}

// Token returns the token snapshot, empty when signed out
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated asks the token store, not the snapshot
func (s *AuthStore) IsAuthenticated(ctx context.Context) bool {
	return s.tokens.IsAuthenticated(ctx)
}

// Refresh reloads the snapshot from the token store, e.g. after a login
func (s *AuthStore) Refresh(ctx context.Context) {
	token, _ := s.tokens.Get(ctx)
	s.update(token)
}

// WithNavigator replaces the navigator used by Logout
func (s *AuthStore) WithNavigator(navigator Navigator) *AuthStore {
	s.mu.Lock()
	s.navigator = navigator
	s.mu.Unlock()
	return s
}

// Logout removes the token and navigates to the login page
func (s *AuthStore) Logout(ctx context.Context) error {
	if err := s.tokens.Remove(ctx); err != nil {
		return err
	}
	s.update("")

	s.mu.RLock()
	navigator := s.navigator
	s.mu.RUnlock()

	if navigator == nil {
		return nil
	}
	return navigator.Navigate(ctx, s.loginPath)
}

// Subscribe registers fn to be called with the new snapshot on change
func (s *AuthStore) Subscribe(fn func(token string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *AuthStore) update(token string) {
	s.mu.Lock()
	if s.token == token {
		s.mu.Unlock()
		return
	}
	s.token = token
	subscribers := make([]func(string), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(token)
	}
}
