package jobtrack

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Storage is a persistent string key value store. It plays the role the
// browser's local storage plays for the web page.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// TokenStore holds at most one bearer token
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// Navigator moves the user to another location, e.g. the login page
// once a session has been rejected by the server.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// NavigatorFunc adapts a plain function to a Navigator
type NavigatorFunc func(ctx context.Context, path string) error

func (f NavigatorFunc) Navigate(ctx context.Context, path string) error {
	return f(ctx, path)
}

// StoreRegistry keeps named shared records that UI code can look up,
// the "auth" store is registered there on application ready.
type StoreRegistry interface {
	Register(name string, value any) error
	Lookup(name string) (any, bool)
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetLoginPath() string
	GetTokenKey() string
	GetStoragePath() string
	GetTimezone() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] JOBTRACK "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] JOBTRACK "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] JOBTRACK "+newline(format), args...)
}

type nopLogger struct{}

func (nopLogger) Error(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// NopLogger returns a Logger that discards everything
func NopLogger() Logger {
	return nopLogger{}
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
