package jobtrack

import (
	"context"
)

// DefaultTokenKey is the storage key holding the bearer token
const DefaultTokenKey = "token"

var _ TokenStore = &StorageTokenStore{}

// StorageTokenStore keeps the bearer token under a single storage key.
// Setting overwrites the previous value, removing clears it.
type StorageTokenStore struct {
	storage Storage
	key     string
	logger  Logger
}

// NewTokenStore returns a TokenStore backed by storage. A nil storage
// falls back to an in memory one.
func NewTokenStore(storage Storage) *StorageTokenStore {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &StorageTokenStore{
		storage: storage,
		key:     DefaultTokenKey,
		logger:  defLogger{},
	}
}

func (s *StorageTokenStore) WithTokenKey(key string) *StorageTokenStore {
	if key != "" {
		s.key = key
	}
	return s
}

func (s *StorageTokenStore) WithLogger(logger Logger) *StorageTokenStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Key returns the storage key in use
func (s *StorageTokenStore) Key() string {
	return s.key
}

// Get returns the stored token. Read failures are logged and reported as
// an absent token.
func (s *StorageTokenStore) Get(ctx context.Context) (string, bool) {
	token, ok, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		s.logger.Error("token store read failed: %s", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *StorageTokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return s.storage.SetItem(ctx, s.key, token)
}

func (s *StorageTokenStore) Remove(ctx context.Context) error {
	return s.storage.RemoveItem(ctx, s.key)
}

func (s *StorageTokenStore) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Get(ctx)
	return ok
}
