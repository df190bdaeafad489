package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	jobtrack "github.com/dan-yates1/job-tracker"
)

const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeRequestFailed      = "API_REQUEST_FAILED"
	TextCodeInvalidResponse    = "API_INVALID_RESPONSE"
)

// ErrInvalidCredentials is returned by Login when the server rejects the
// email and password pair
var ErrInvalidCredentials = errors.New("incorrect username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// Client talks to the JobTrack server through an authorized jobtrack.Client
type Client struct {
	fetch *jobtrack.Client
}

func New(fetch *jobtrack.Client) *Client {
	return &Client{fetch: fetch}
}

// Login exchanges credentials for an access token and stores it. The
// request bypasses the session expiry handling, a 401 here means wrong
// credentials, not an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := c.fetch.NewRequest(ctx, "/token",
		jobtrack.WithMethod(http.MethodPost),
		jobtrack.WithHeader("Content-Type", "application/x-www-form-urlencoded"),
		jobtrack.WithBody(strings.NewReader(form.Encode())),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Del("Authorization")

	res, err := c.fetch.HTTPClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, jobtrack.ErrNetwork.Category, jobtrack.ErrNetwork.Message).
			WithTextCode(jobtrack.ErrNetwork.TextCode)
	}

	if res.StatusCode == http.StatusUnauthorized {
		drain(res)
		return nil, ErrInvalidCredentials
	}

	token := &Token{}
	if err := decode(res, token); err != nil {
		return nil, err
	}

	if err := c.fetch.Tokens().Set(ctx, token.AccessToken); err != nil {
		return nil, err
	}

	return token, nil
}

// Register creates a user account
func (c *Client) Register(ctx context.Context, user UserCreate) (*User, error) {
	if err := user.Validate(); err != nil {
		return nil, validationError(err)
	}
	out := &User{}
	if err := c.send(ctx, http.MethodPost, "/users/", user, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := c.send(ctx, http.MethodGet, "/jobs/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	out := &Job{}
	if err := c.send(ctx, http.MethodGet, jobPath(id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateJob(ctx context.Context, job JobCreate) (*Job, error) {
	if err := job.Validate(); err != nil {
		return nil, validationError(err)
	}
	out := &Job{}
	if err := c.send(ctx, http.MethodPost, "/jobs/", job, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateJob(ctx context.Context, id uuid.UUID, update JobUpdate) (*Job, error) {
	if err := update.Validate(); err != nil {
		return nil, validationError(err)
	}
	out := &Job{}
	if err := c.send(ctx, http.MethodPut, jobPath(id), update, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return c.send(ctx, http.MethodDelete, jobPath(id), nil, nil)
}

func (c *Client) CreateInteraction(ctx context.Context, interaction JobInteractionCreate) (*JobInteraction, error) {
	if err := interaction.Validate(); err != nil {
		return nil, validationError(err)
	}
	out := &JobInteraction{}
	if err := c.send(ctx, http.MethodPost, interactionsPath(interaction.JobID), interaction, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListInteractions(ctx context.Context, jobID uuid.UUID) ([]JobInteraction, error) {
	var out []JobInteraction
	if err := c.send(ctx, http.MethodGet, interactionsPath(jobID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	opts := []jobtrack.FetchOption{jobtrack.WithMethod(method)}
	if payload != nil {
		opts = append(opts, jobtrack.WithJSONBody(payload))
	}

	res, err := c.fetch.Fetch(ctx, path, opts...)
	if err != nil {
		return err
	}

	return decode(res, out)
}

func jobPath(id uuid.UUID) string {
	return fmt.Sprintf("/jobs/%s", id)
}

func interactionsPath(jobID uuid.UUID) string {
	return fmt.Sprintf("/jobs/%s/interactions/", jobID)
}

func drain(res *http.Response) {
	io.Copy(io.Discard, io.LimitReader(res.Body, maxErrorBody))
	res.Body.Close()
}

func validationError(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, "invalid request payload").
		WithCode(errors.CodeBadRequest)
}
