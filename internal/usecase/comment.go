package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/policy"
)

type CommentUsecase struct {
	posts    PostService
	comments CommentService
}

func NewCommentUsecase(posts PostService, comments CommentService) *CommentUsecase {
	return &CommentUsecase{posts: posts, comments: comments}
}

// Add creates a comment on an existing post. The principal gate comes
// first so an anonymous caller costs no backend calls; the post fetch is
// terminal because commenting on a missing post is meaningless.
func (uc *CommentUsecase) Add(ctx context.Context, p *blog.Principal, postID, content string) blog.Outcome[blog.CommentView] {
	if p == nil || p.ID == "" {
		return blog.Unauthorized[blog.CommentView]()
	}

	post := uc.posts.Get(ctx, postID)
	if post.Failed() {
		return blog.ForwardFailure[blog.CommentView](post)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return blog.Invalid[blog.CommentView]("comment is empty")
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return blog.Invalid[blog.CommentView]("comment exceeds maximum length")
	}

	return uc.comments.Create(ctx, client.Caller{ID: p.ID}, post.Data.ID, content, p.DisplayName)
}

// Delete soft-deletes a comment. The post is fetched only when the
// requester is neither the comment author nor a moderator, to decide the
// post-owner override; a granted override travels to the comments service
// as the moderator role header.
func (uc *CommentUsecase) Delete(ctx context.Context, p *blog.Principal, commentID string) blog.Outcome[blog.CommentView] {
	if p == nil || p.ID == "" {
		return blog.Unauthorized[blog.CommentView]()
	}

	comment := uc.comments.Get(ctx, commentID)
	if comment.Failed() {
		return comment
	}

	caller := client.Caller{ID: p.ID, AsModerator: p.IsModerator()}

	if p.ID != comment.Data.AuthorID && !p.IsModerator() {
		post := uc.posts.Get(ctx, comment.Data.PostID)
		if post.Failed() {
			return blog.ForwardFailure[blog.CommentView](post)
		}
		if !policy.CanDeleteComment(*p, comment.Data, post.Data) {
			return blog.Forbidden[blog.CommentView]()
		}
		caller.AsModerator = true
	}

	return uc.comments.Delete(ctx, caller, commentID)
}
