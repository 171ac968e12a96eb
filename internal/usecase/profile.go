package usecase

import (
	"context"
	"log/slog"
	"strings"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
	"github.com/Esteban8482/blog-platform/policy"
)

type ProfileUsecase struct {
	users UserDirectory
	posts PostService
}

func NewProfileUsecase(users UserDirectory, posts PostService) *ProfileUsecase {
	return &ProfileUsecase{users: users, posts: posts}
}

// View assembles the profile page. The profile fetch is terminal; a failing
// post listing degrades to an empty list with a warning.
func (uc *ProfileUsecase) View(ctx context.Context, username string) blog.Outcome[blog.ProfilePage] {
	profile := uc.users.GetProfile(ctx, username)
	if profile.Failed() {
		return blog.ForwardFailure[blog.ProfilePage](profile)
	}

	page := blog.ProfilePage{Profile: profile.Data, Posts: []blog.PostView{}}

	posts := uc.posts.ListByUser(ctx, profile.Data.ID)
	if posts.Failed() {
		slog.WarnContext(ctx, "profile post listing degraded",
			slog.String("user", profile.Data.ID),
			slog.String("kind", posts.Kind.String()),
			slog.String("detail", posts.Detail),
			slog.String("module", "usecase"),
		)
		return blog.Ok(page).WithWarning("posts are temporarily unavailable")
	}

	page.Posts = posts.Data
	return blog.Ok(page)
}

// UpdateBio changes the only mutable profile field, gated on ownership.
func (uc *ProfileUsecase) UpdateBio(ctx context.Context, p *blog.Principal, username, bio string) blog.Outcome[blog.UserProfile] {
	if p == nil {
		return blog.Unauthorized[blog.UserProfile]()
	}

	profile := uc.users.GetProfile(ctx, username)
	if profile.Failed() {
		return profile
	}
	if !policy.CanEditProfile(*p, profile.Data) {
		return blog.Forbidden[blog.UserProfile]()
	}

	return uc.users.UpdateBio(ctx, client.Caller{ID: p.ID}, username, strings.TrimSpace(bio))
}

// Ensure registers a profile if absent. A Conflict from the directory means
// the profile already exists and resolves to the existing record, so the
// operation is idempotent.
func (uc *ProfileUsecase) Ensure(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile] {
	created := uc.users.CreateProfile(ctx, id, username)
	if created.Kind != blog.KindConflict {
		return created
	}

	existing := uc.users.GetProfile(ctx, username)
	if existing.IsOk() {
		return existing
	}
	return blog.Ok(blog.UserProfile{ID: id, Username: username})
}
