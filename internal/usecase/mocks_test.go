package usecase

import (
	"context"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
)

// --- mocks ---

type mockPostService struct {
	getOut    blog.Outcome[blog.PostView]
	createOut blog.Outcome[blog.PostView]
	editOut   blog.Outcome[blog.PostView]
	deleteOut blog.Outcome[struct{}]
	listOut   blog.Outcome[[]blog.PostView]
	recentOut blog.Outcome[[]blog.PostView]

	gets    int
	creates int
	edits   int
	deletes int

	lastCaller  client.Caller
	lastTitle   string
	lastContent string
	lastLimit   int
}

func (m *mockPostService) Get(ctx context.Context, id string) blog.Outcome[blog.PostView] {
	m.gets++
	return m.getOut
}

func (m *mockPostService) Create(ctx context.Context, caller client.Caller, title, content, username string) blog.Outcome[blog.PostView] {
	m.creates++
	m.lastCaller = caller
	m.lastTitle = title
	m.lastContent = content
	return m.createOut
}

func (m *mockPostService) Edit(ctx context.Context, caller client.Caller, id, title, content string) blog.Outcome[blog.PostView] {
	m.edits++
	m.lastCaller = caller
	m.lastTitle = title
	m.lastContent = content
	return m.editOut
}

func (m *mockPostService) Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[struct{}] {
	m.deletes++
	m.lastCaller = caller
	return m.deleteOut
}

func (m *mockPostService) ListByUser(ctx context.Context, userID string) blog.Outcome[[]blog.PostView] {
	return m.listOut
}

func (m *mockPostService) Recent(ctx context.Context, limit int, title string) blog.Outcome[[]blog.PostView] {
	m.lastLimit = limit
	return m.recentOut
}

type mockCommentService struct {
	createOut blog.Outcome[blog.CommentView]
	getOut    blog.Outcome[blog.CommentView]
	deleteOut blog.Outcome[blog.CommentView]
	listOut   blog.Outcome[blog.CommentListing]

	creates int
	gets    int
	deletes int

	lastCaller     client.Caller
	lastContent    string
	lastAuthorName string
}

func (m *mockCommentService) Create(ctx context.Context, caller client.Caller, postID, content, authorName string) blog.Outcome[blog.CommentView] {
	m.creates++
	m.lastCaller = caller
	m.lastContent = content
	m.lastAuthorName = authorName
	return m.createOut
}

func (m *mockCommentService) Get(ctx context.Context, id string) blog.Outcome[blog.CommentView] {
	m.gets++
	return m.getOut
}

func (m *mockCommentService) Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[blog.CommentView] {
	m.deletes++
	m.lastCaller = caller
	return m.deleteOut
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID string, page, perPage int) blog.Outcome[blog.CommentListing] {
	return m.listOut
}

type mockUserDirectory struct {
	getOut    blog.Outcome[blog.UserProfile]
	updateOut blog.Outcome[blog.UserProfile]
	createOut blog.Outcome[blog.UserProfile]

	gets    int
	updates int
	creates int

	lastBio string
}

func (m *mockUserDirectory) GetProfile(ctx context.Context, username string) blog.Outcome[blog.UserProfile] {
	m.gets++
	return m.getOut
}

func (m *mockUserDirectory) UpdateBio(ctx context.Context, caller client.Caller, username, bio string) blog.Outcome[blog.UserProfile] {
	m.updates++
	m.lastBio = bio
	return m.updateOut
}

func (m *mockUserDirectory) CreateProfile(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile] {
	m.creates++
	return m.createOut
}
