package usecase

import (
	"context"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
)

// PostService is the slice of the post resource client the usecases need.
type PostService interface {
	Get(ctx context.Context, id string) blog.Outcome[blog.PostView]
	Create(ctx context.Context, caller client.Caller, title, content, username string) blog.Outcome[blog.PostView]
	Edit(ctx context.Context, caller client.Caller, id, title, content string) blog.Outcome[blog.PostView]
	Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[struct{}]
	ListByUser(ctx context.Context, userID string) blog.Outcome[[]blog.PostView]
	Recent(ctx context.Context, limit int, title string) blog.Outcome[[]blog.PostView]
}

// CommentService is the slice of the comments resource client the usecases
// need.
type CommentService interface {
	Create(ctx context.Context, caller client.Caller, postID, content, authorName string) blog.Outcome[blog.CommentView]
	Get(ctx context.Context, id string) blog.Outcome[blog.CommentView]
	Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[blog.CommentView]
	ListByPost(ctx context.Context, postID string, page, perPage int) blog.Outcome[blog.CommentListing]
}

// UserDirectory is the slice of the user directory client the usecases
// need.
type UserDirectory interface {
	GetProfile(ctx context.Context, username string) blog.Outcome[blog.UserProfile]
	UpdateBio(ctx context.Context, caller client.Caller, username, bio string) blog.Outcome[blog.UserProfile]
	CreateProfile(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile]
}
