// Package usecase implements the page-level orchestrations of the gateway.
// Each usecase sequences resource-client calls in a fixed order, applies
// the ownership policy after fetching, and reports every failure through
// the Outcome type.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
	"github.com/Esteban8482/blog-platform/policy"
)

const (
	defaultCommentsPerPage = 50
	defaultRecentLimit     = 10
	maxRecentLimit         = 100
)

type PostUsecase struct {
	posts    PostService
	comments CommentService
}

func NewPostUsecase(posts PostService, comments CommentService) *PostUsecase {
	return &PostUsecase{posts: posts, comments: comments}
}

// Detail assembles the post page. The post fetch is terminal; a failing
// comment list degrades to an empty list with a warning, because the
// primary resource succeeded and the page is still useful.
func (uc *PostUsecase) Detail(ctx context.Context, id string) blog.Outcome[blog.PostPage] {
	post := uc.posts.Get(ctx, id)
	if post.Failed() {
		return blog.ForwardFailure[blog.PostPage](post)
	}

	page := blog.PostPage{Post: post.Data, Comments: []blog.CommentView{}}

	comments := uc.comments.ListByPost(ctx, id, 1, defaultCommentsPerPage)
	if comments.Failed() {
		slog.WarnContext(ctx, "comment listing degraded",
			slog.String("post", id),
			slog.String("kind", comments.Kind.String()),
			slog.String("detail", comments.Detail),
			slog.String("module", "usecase"),
		)
		return blog.Ok(page).WithWarning("comments are temporarily unavailable")
	}

	page.Comments = comments.Data.Items
	return blog.Ok(page)
}

// Recent lists the landing-page posts, newest first, optionally filtered
// by title.
func (uc *PostUsecase) Recent(ctx context.Context, limit int, title string) blog.Outcome[[]blog.PostView] {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return uc.posts.Recent(ctx, limit, strings.TrimSpace(title))
}

func (uc *PostUsecase) Create(ctx context.Context, p *blog.Principal, title, content string) blog.Outcome[blog.PostView] {
	if p == nil {
		return blog.Unauthorized[blog.PostView]()
	}
	title, content, reason := validatePostFields(title, content)
	if reason != "" {
		return blog.Invalid[blog.PostView](reason)
	}
	return uc.posts.Create(ctx, client.Caller{ID: p.ID}, title, content, p.DisplayName)
}

// Edit runs fetch, policy, validation, persist, strictly in that order,
// and short-circuits on the first failure.
func (uc *PostUsecase) Edit(ctx context.Context, p *blog.Principal, id, title, content string) blog.Outcome[blog.PostView] {
	if p == nil {
		return blog.Unauthorized[blog.PostView]()
	}

	post := uc.posts.Get(ctx, id)
	if post.Failed() {
		return post
	}
	if !policy.CanEditPost(*p, post.Data) {
		return blog.Forbidden[blog.PostView]()
	}

	title, content, reason := validatePostFields(title, content)
	if reason != "" {
		return blog.Invalid[blog.PostView](reason)
	}

	return uc.posts.Edit(ctx, client.Caller{ID: p.ID}, id, title, content)
}

func (uc *PostUsecase) Delete(ctx context.Context, p *blog.Principal, id string) blog.Outcome[struct{}] {
	if p == nil {
		return blog.Unauthorized[struct{}]()
	}

	post := uc.posts.Get(ctx, id)
	if post.Failed() {
		return blog.ForwardFailure[struct{}](post)
	}
	if !policy.CanEditPost(*p, post.Data) {
		return blog.Forbidden[struct{}]()
	}

	return uc.posts.Delete(ctx, client.Caller{ID: p.ID}, id)
}

func validatePostFields(title, content string) (string, string, string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", "title is required"
	}
	if content == "" {
		return "", "", "content is required"
	}
	return title, content, ""
}
