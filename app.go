package jobtrack

import (
	"context"
	"net/http"
	"sync"
)

// UtilsName is the name the page utilities are published under
const UtilsName = "jobTrackUtils"

// Utils bundles the page utilities so other components can take them by
// explicit reference.
type Utils struct {
	Fetch           func(ctx context.Context, url string, opts ...FetchOption) (*http.Response, error)
	FormatDate      func(input string) string
	FormatCurrency  func(amount float64) string
	StatusClass     func(status string) string
	GetToken        func(ctx context.Context) (string, bool)
	SetToken        func(ctx context.Context, token string) error
	RemoveToken     func(ctx context.Context) error
	IsAuthenticated func(ctx context.Context) bool
}

// App wires the token store, the authorized client and the formatters for
// one session. Utils are available as soon as New returns, the auth store
// is registered when the host calls OnReady.
type App struct {
	cfg       Config
	tokens    TokenStore
	client    *Client
	formatter *Formatter
	navigator Navigator
	logger    Logger
	utils     *Utils

	mu        sync.Mutex
	ready     bool
	authStore *AuthStore
}

// New builds an App from cfg. Storage defaults to a FileStorage at the
// configured storage path, in memory when the path is empty.
func New(cfg Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultOptions()
	}

	if v, ok := cfg.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	loc, err := loadLocation(cfg.GetTimezone())
	if err != nil {
		return nil, err
	}

	var storage Storage = NewMemoryStorage()
	if p := cfg.GetStoragePath(); p != "" {
		storage = NewFileStorage(p)
	}

	a := &App{
		cfg:       cfg,
		formatter: NewFormatter(loc),
		logger:    defLogger{},
		navigator: NavigatorFunc(func(context.Context, string) error { return nil }),
	}
	a.tokens = NewTokenStore(storage).WithTokenKey(cfg.GetTokenKey())

	client, err := NewClient(a.tokens).
		WithLoginPath(cfg.GetLoginPath()).
		WithBaseURL(cfg.GetBaseURL())
	if err != nil {
		return nil, err
	}
	a.client = client
	a.utils = a.buildUtils()

	return a, nil
}

// WithStorage swaps the token storage backend
func (a *App) WithStorage(storage Storage) *App {
	store := NewTokenStore(storage).
		WithTokenKey(a.cfg.GetTokenKey()).
		WithLogger(a.logger)
	return a.WithTokenStore(store)
}

// WithTokenStore replaces the token store used by every component
func (a *App) WithTokenStore(tokens TokenStore) *App {
	if tokens == nil {
		return a
	}
	a.tokens = tokens
	a.client.tokens = tokens
	a.utils = a.buildUtils()
	return a
}

// WithNavigator replaces the navigator used on 401 and on logout, including
// the one held by an already registered auth store.
func (a *App) WithNavigator(navigator Navigator) *App {
	if navigator == nil {
		return a
	}
	a.mu.Lock()
	a.navigator = navigator
	store := a.authStore
	a.mu.Unlock()

	a.client.WithNavigator(navigator)
	if store != nil {
		store.WithNavigator(navigator)
	}
	return a
}

func (a *App) WithHTTPClient(client *http.Client) *App {
	a.client.WithHTTPClient(client)
	return a
}

func (a *App) WithLogger(logger Logger) *App {
	if logger == nil {
		return a
	}
	a.logger = logger
	a.client.WithLogger(logger)
	if s, ok := a.tokens.(*StorageTokenStore); ok {
		s.WithLogger(logger)
	}
	return a
}

func (a *App) Config() Config { return a.cfg }
func (a *App) Tokens() TokenStore { return a.tokens }
func (a *App) Client() *Client { return a.client }
func (a *App) Formatter() *Formatter { return a.formatter }
func (a *App) Utils() *Utils { return a.utils }
func (a *App) Logger() Logger { return a.logger }

func (a *App) Navigator() Navigator {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.navigator
}

// OnReady registers the auth store with registry. The host calls it once
// its UI layer is ready. Once a registration succeeded later calls do
// nothing, a failed one can be retried.
func (a *App) OnReady(ctx context.Context, registry StoreRegistry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return nil
	}

	store := NewAuthStore(ctx, a.tokens, a.navigator, a.cfg.GetLoginPath())
	if err := registry.Register(AuthStoreName, store); err != nil {
		a.logger.Error("unable to register %s store: %s", AuthStoreName, err)
		return err
	}

	a.authStore = store
	a.ready = true
	a.logger.Debug("registered %s store", AuthStoreName)
	return nil
}

// AuthStore returns the store registered by OnReady, nil before
func (a *App) AuthStore() *AuthStore {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authStore
}

// Logout removes the token and navigates to the login path
func (a *App) Logout(ctx context.Context) error {
	if store := a.AuthStore(); store != nil {
		return store.Logout(ctx)
	}
	if err := a.tokens.Remove(ctx); err != nil {
		return err
	}
	return a.Navigator().Navigate(ctx, a.client.LoginPath())
}

func (a *App) buildUtils() *Utils {
	return &Utils{
		Fetch:           a.client.Fetch,
		FormatDate:      a.formatter.FormatDate,
		FormatCurrency:  a.formatter.FormatCurrency,
		StatusClass:     StatusClass,
		GetToken:        a.tokens.Get,
		SetToken:        a.tokens.Set,
		RemoveToken:     a.tokens.Remove,
		IsAuthenticated: a.tokens.IsAuthenticated,
	}
}
