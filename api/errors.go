package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

// maxErrorBody caps how much of an error response is kept as detail
const maxErrorBody = 4 << 10

func decode(res *http.Response, out any) error {
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return responseError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to decode response").
			WithTextCode(TextCodeInvalidResponse).
			WithMetadata(map[string]any{
				"status": res.StatusCode,
				"url":    requestURL(res),
			})
	}
	return nil
}

// responseError turns a non 2xx response into a rich error. The server
// reports failures as {"detail": ...} where detail is a message or, for
// validation failures, a list of field errors.
func responseError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	message := http.StatusText(res.StatusCode)
	metadata := map[string]any{
		"status": res.StatusCode,
		"url":    requestURL(res),
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			message = detail
		} else {
			metadata["detail"] = payload.Detail
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		metadata["body"] = text
	}

	return errors.New(message, categoryFor(res.StatusCode)).
		WithTextCode(TextCodeRequestFailed).
		WithCode(res.StatusCode).
		WithMetadata(metadata)
}

func categoryFor(status int) errors.Category {
	switch status {
	case http.StatusBadRequest:
		return errors.CategoryBadInput
	case http.StatusForbidden:
		return errors.CategoryAuthz
	case http.StatusNotFound:
		return errors.CategoryNotFound
	case http.StatusConflict:
		return errors.CategoryConflict
	case http.StatusUnprocessableEntity:
		return errors.CategoryValidation
	case http.StatusTooManyRequests:
		return errors.CategoryRateLimit
	default:
		return errors.CategoryInternal
	}
}

func requestURL(res *http.Response) string {
	if res.Request == nil || res.Request.URL == nil {
		return ""
	}
	return res.Request.URL.Redacted()
}

// StatusCode returns the HTTP status carried by an api error, 0 otherwise
func StatusCode(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return 0
	}
	return richErr.Code
}
