// Package policy holds the ownership predicates gating mutations. They are
// pure functions over already-fetched views, evaluated only after the
// resource exists, so "not found" and "forbidden" cannot leak existence
// through differing error shapes. Reads of posts and profiles are public
// and never gated.
package policy

import (
	blog "github.com/Esteban8482/blog-platform"
)

// CanEditPost allows the author to edit or delete their post.
func CanEditPost(p blog.Principal, post blog.PostView) bool {
	return p.ID != "" && p.ID == post.AuthorID
}

// CanDeleteComment allows the comment author, the owner of the post the
// comment belongs to, and moderators.
func CanDeleteComment(p blog.Principal, comment blog.CommentView, post blog.PostView) bool {
	if p.ID == "" {
		return false
	}
	return p.ID == comment.AuthorID || p.ID == post.AuthorID || p.IsModerator()
}

// CanEditProfile allows only the profile owner to change the bio.
func CanEditProfile(p blog.Principal, profile blog.UserProfile) bool {
	return p.ID != "" && p.ID == profile.ID
}
