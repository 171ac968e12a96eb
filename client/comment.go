package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	blog "github.com/Esteban8482/blog-platform"
)

// CommentClient wraps the comments service routes. Unlike the user and post
// services, the comments service speaks bare JSON objects.
type CommentClient struct {
	c *Client
}

func NewCommentClient(baseURL string) *CommentClient {
	return &CommentClient{c: New(baseURL)}
}

// Create posts a comment on behalf of the caller. The author's display
// name travels in the payload so listings can render it without a
// directory lookup.
func (cc *CommentClient) Create(ctx context.Context, caller Caller, postID, content, authorName string) blog.Outcome[blog.CommentView] {
	payload := map[string]string{
		"post_id":     postID,
		"content":     content,
		"author_name": authorName,
	}
	return callPlain[blog.CommentView](ctx, cc.c, http.MethodPost, "/v1/comments", caller, payload)
}

func (cc *CommentClient) Get(ctx context.Context, id string) blog.Outcome[blog.CommentView] {
	path := "/v1/comments/" + url.PathEscape(id)
	return callPlain[blog.CommentView](ctx, cc.c, http.MethodGet, path, Caller{}, nil)
}

// Delete soft-deletes a comment. The moderator override is forwarded via
// the role header when the caller acts as one.
func (cc *CommentClient) Delete(ctx context.Context, caller Caller, id string) blog.Outcome[blog.CommentView] {
	path := "/v1/comments/" + url.PathEscape(id)
	return callPlain[blog.CommentView](ctx, cc.c, http.MethodDelete, path, caller, nil)
}

// ListByPost returns one page of not-deleted comments for a post, oldest
// first.
func (cc *CommentClient) ListByPost(ctx context.Context, postID string, page, perPage int) blog.Outcome[blog.CommentListing] {
	q := url.Values{}
	q.Set("post_id", postID)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	return callPlain[blog.CommentListing](ctx, cc.c, http.MethodGet, "/v1/comments?"+q.Encode(), Caller{}, nil)
}
