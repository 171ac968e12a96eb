// Package client provides typed HTTP clients for the backend resource
// services (user directory, posts, comments). Every call returns an
// Outcome: network failures, timeouts and unparseable bodies become
// upstream failures, never errors raised past this boundary. The clients
// are stateless and do not retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
)

const defaultTimeout = 5 * time.Second

// maxErrorBody bounds how much of an upstream failure body is kept for logs.
const maxErrorBody = 512

// Caller identifies the principal a call is made on behalf of, propagated
// as an identity header. The zero value is anonymous.
type Caller struct {
	ID          string
	AsModerator bool
}

// Client is the shared HTTP transport for one backend base URL.
type Client struct {
	http *http.Client
	base string
}

func New(baseURL string) *Client {
	return &Client{
		http: &http.Client{Timeout: defaultTimeout},
		base: strings.TrimSuffix(baseURL, "/"),
	}
}

// do performs one request and hands back status and body. A returned error
// means the network layer failed; HTTP-level failures come back as a status.
func (c *Client) do(ctx context.Context, method, path string, caller Caller, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller.ID != "" {
		req.Header.Set(domain.UserIDHeader, caller.ID)
	}
	if caller.AsModerator {
		req.Header.Set(domain.UserRoleHeader, blog.RoleModerator)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, data, nil
}

// failure maps a non-2xx status to the corresponding outcome kind. Anything
// outside the well-known client-error statuses is an upstream failure.
func failure[T any](status int, msg string, body []byte) blog.Outcome[T] {
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest:
		return blog.Invalid[T](msg)
	case http.StatusUnauthorized:
		return blog.Unauthorized[T]()
	case http.StatusForbidden:
		return blog.Forbidden[T]()
	case http.StatusNotFound:
		return blog.NotFound[T]()
	case http.StatusConflict:
		return blog.Conflict[T](msg)
	default:
		return blog.Upstream[T](fmt.Sprintf("unexpected status %d: %s", status, truncate(body)))
	}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}

func ok2xx(status int) bool {
	return status >= 200 && status < 300
}

// envelope is the `{success, message, ...}` wire format spoken by the user
// and post services. Exactly one of the payload fields is populated,
// depending on the route.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Post    json.RawMessage `json:"post"`
	Posts   json.RawMessage `json:"posts"`
}

// callEnvelope performs a call against an envelope-speaking service and
// decodes the picked payload field into T.
func callEnvelope[T any](ctx context.Context, c *Client, method, path string, caller Caller, payload any, pick func(envelope) json.RawMessage) blog.Outcome[T] {
	status, body, err := c.do(ctx, method, path, caller, payload)
	if err != nil {
		return blog.Upstream[T](err.Error())
	}

	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		if ok2xx(status) {
			return blog.Upstream[T](fmt.Sprintf("unparseable body: %v", jsonErr))
		}
		return failure[T](status, "", body)
	}

	if !ok2xx(status) || !env.Success {
		return failure[T](status, env.Message, body)
	}

	var data T
	raw := pick(env)
	if raw != nil {
		if jsonErr := json.Unmarshal(raw, &data); jsonErr != nil {
			return blog.Upstream[T](fmt.Sprintf("unparseable payload: %v", jsonErr))
		}
	}
	return blog.Ok(data)
}

// callPlain performs a call against the comments service, which answers
// with bare objects on success and `{"error": ...}` on failure.
func callPlain[T any](ctx context.Context, c *Client, method, path string, caller Caller, payload any) blog.Outcome[T] {
	status, body, err := c.do(ctx, method, path, caller, payload)
	if err != nil {
		return blog.Upstream[T](err.Error())
	}

	if !ok2xx(status) {
		var fail struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &fail)
		return failure[T](status, fail.Error, body)
	}

	var data T
	if len(body) > 0 {
		if jsonErr := json.Unmarshal(body, &data); jsonErr != nil {
			return blog.Upstream[T](fmt.Sprintf("unparseable body: %v", jsonErr))
		}
	}
	return blog.Ok(data)
}
