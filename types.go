package blogplatform

import (
	"time"
)

// RoleModerator grants comment deletion on any post.
const RoleModerator = "moderator"

// Principal is the authenticated identity behind a request. It is resolved
// once per request and never persisted by the gateway.
type Principal struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
}

func (p Principal) IsModerator() bool {
	return p.Role == RoleModerator
}

// PostView is a post as served by the post service. IDs are assigned by the
// owning service, never by the gateway.
type PostView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	AuthorID   string    `json:"user_id"`
	AuthorName string    `json:"username"`
}

// CommentView is a comment as served by the comments service. A soft-deleted
// comment stays addressable by id but is excluded from default listings.
type CommentView struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"user_id"`
	AuthorName string    `json:"username,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsDeleted  bool      `json:"is_deleted"`
}

// UserProfile is a profile as served by the user directory. Username is
// unique and immutable once set; only the bio is mutable.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListing is one page of comments for a post.
type CommentListing struct {
	Items   []CommentView `json:"items"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// PostPage is the aggregated "post detail" view.
type PostPage struct {
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

// ProfilePage is the aggregated "user profile" view.
type ProfilePage struct {
	Profile UserProfile `json:"profile"`
	Posts   []PostView  `json:"posts"`
}
