package jobtrack

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeAuthExpired   = "AUTH_EXPIRED"
	TextCodeNetworkError  = "NETWORK_ERROR"
	TextCodeEmptyToken    = "EMPTY_TOKEN"
	TextCodeInvalidURL    = "INVALID_URL"
	TextCodeInvalidConfig = "INVALID_CONFIG"
	TextCodeEmptyStore    = "EMPTY_STORE_NAME"
)

// ErrAuthExpired is returned by Fetch when the server answered 401. The stored
// token has already been removed and the navigator sent to the login page.
var ErrAuthExpired = errors.New("authentication expired", errors.CategoryAuth).
	WithTextCode(TextCodeAuthExpired).
	WithCode(errors.CodeUnauthorized)

// ErrNetwork wraps transport failures, the request never produced a response
var ErrNetwork = errors.New("request failed", errors.CategoryOperation).
	WithTextCode(TextCodeNetworkError).
	WithCode(errors.CodeInternal)

// ErrEmptyToken is returned when storing an empty token
var ErrEmptyToken = errors.New("token must not be empty", errors.CategoryBadInput).
	WithTextCode(TextCodeEmptyToken).
	WithCode(errors.CodeBadRequest)

// ErrInvalidURL is returned when a request URL cannot be parsed or resolved
var ErrInvalidURL = errors.New("invalid request url", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidURL).
	WithCode(errors.CodeBadRequest)

// ErrInvalidConfig is returned when configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidConfig).
	WithCode(errors.CodeBadRequest)

// ErrEmptyStoreName is returned when registering a store without a name
var ErrEmptyStoreName = errors.New("store name must not be empty", errors.CategoryBadInput).
	WithTextCode(TextCodeEmptyStore).
	WithCode(errors.CodeBadRequest)

// IsAuthExpired reports whether err signals a rejected session
func IsAuthExpired(err error) bool {
	return hasTextCode(err, TextCodeAuthExpired)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return hasTextCode(err, TextCodeNetworkError)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
