package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	blog "github.com/Esteban8482/blog-platform"
)

// PostClient wraps the post service routes.
type PostClient struct {
	c *Client
}

func NewPostClient(baseURL string) *PostClient {
	return &PostClient{c: New(baseURL)}
}

func pickPost(env envelope) json.RawMessage  { return env.Post }
func pickPosts(env envelope) json.RawMessage { return env.Posts }

func (p *PostClient) Get(ctx context.Context, id string) blog.Outcome[blog.PostView] {
	path := "/post/" + url.PathEscape(id)
	return callEnvelope[blog.PostView](ctx, p.c, http.MethodGet, path, Caller{}, nil, pickPost)
}

func (p *PostClient) Create(ctx context.Context, caller Caller, title, content, username string) blog.Outcome[blog.PostView] {
	payload := map[string]string{
		"title":    title,
		"content":  content,
		"username": username,
	}
	return callEnvelope[blog.PostView](ctx, p.c, http.MethodPost, "/post/new", caller, payload, pickPost)
}

func (p *PostClient) Edit(ctx context.Context, caller Caller, id, title, content string) blog.Outcome[blog.PostView] {
	path := "/post/" + url.PathEscape(id) + "/edit"
	payload := map[string]string{
		"title":   title,
		"content": content,
	}
	return callEnvelope[blog.PostView](ctx, p.c, http.MethodPost, path, caller, payload, pickPost)
}

func (p *PostClient) Delete(ctx context.Context, caller Caller, id string) blog.Outcome[struct{}] {
	path := "/post/" + url.PathEscape(id) + "/delete"
	return callEnvelope[struct{}](ctx, p.c, http.MethodPost, path, caller, nil, pickPost)
}

func (p *PostClient) ListByUser(ctx context.Context, userID string) blog.Outcome[[]blog.PostView] {
	path := "/post/user/" + url.PathEscape(userID)
	return callEnvelope[[]blog.PostView](ctx, p.c, http.MethodGet, path, Caller{}, nil, pickPosts)
}

// Recent lists up to limit posts, newest first, optionally filtered by a
// title substring.
func (p *PostClient) Recent(ctx context.Context, limit int, title string) blog.Outcome[[]blog.PostView] {
	path := "/post/limit/" + strconv.Itoa(limit)
	if title != "" {
		path += "?title=" + url.QueryEscape(title)
	}
	return callEnvelope[[]blog.PostView](ctx, p.c, http.MethodGet, path, Caller{}, nil, pickPosts)
}
