package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	blog "github.com/Esteban8482/blog-platform"
)

// UserClient wraps the user directory routes.
type UserClient struct {
	c *Client
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{c: New(baseURL)}
}

func pickData(env envelope) json.RawMessage { return env.Data }

func (u *UserClient) GetProfile(ctx context.Context, username string) blog.Outcome[blog.UserProfile] {
	path := "/u/" + url.PathEscape(username)
	return callEnvelope[blog.UserProfile](ctx, u.c, http.MethodGet, path, Caller{}, nil, pickData)
}

func (u *UserClient) UpdateBio(ctx context.Context, caller Caller, username, bio string) blog.Outcome[blog.UserProfile] {
	path := "/u/" + url.PathEscape(username)
	payload := map[string]string{"bio": bio}
	return callEnvelope[blog.UserProfile](ctx, u.c, http.MethodPost, path, caller, payload, pickData)
}

// CreateProfile registers a profile for a principal id. The directory
// answers 409 when the id or username is already taken; callers performing
// a lazy upsert treat that as success.
func (u *UserClient) CreateProfile(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile] {
	payload := map[string]string{"id": id, "username": username}
	return callEnvelope[blog.UserProfile](ctx, u.c, http.MethodPost, "/u/new", Caller{ID: id}, payload, pickData)
}
