package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/client"
	"github.com/Esteban8482/blog-platform/internal/present/rest/middleware"
	"github.com/Esteban8482/blog-platform/internal/present/rest/presenter"
	"github.com/Esteban8482/blog-platform/internal/usecase"
)

type stubPosts struct {
	get    blog.Outcome[blog.PostView]
	create blog.Outcome[blog.PostView]
	edit   blog.Outcome[blog.PostView]
	del    blog.Outcome[struct{}]
	byUser blog.Outcome[[]blog.PostView]
	recent blog.Outcome[[]blog.PostView]
}

func (s *stubPosts) Get(ctx context.Context, id string) blog.Outcome[blog.PostView] { return s.get }
func (s *stubPosts) Create(ctx context.Context, caller client.Caller, title, content, username string) blog.Outcome[blog.PostView] {
	return s.create
}
func (s *stubPosts) Edit(ctx context.Context, caller client.Caller, id, title, content string) blog.Outcome[blog.PostView] {
	return s.edit
}
func (s *stubPosts) Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[struct{}] {
	return s.del
}
func (s *stubPosts) ListByUser(ctx context.Context, userID string) blog.Outcome[[]blog.PostView] {
	return s.byUser
}
func (s *stubPosts) Recent(ctx context.Context, limit int, title string) blog.Outcome[[]blog.PostView] {
	return s.recent
}

type stubComments struct {
	create blog.Outcome[blog.CommentView]
	get    blog.Outcome[blog.CommentView]
	del    blog.Outcome[blog.CommentView]
	list   blog.Outcome[blog.CommentListing]
}

func (s *stubComments) Create(ctx context.Context, caller client.Caller, postID, content, authorName string) blog.Outcome[blog.CommentView] {
	return s.create
}
func (s *stubComments) Get(ctx context.Context, id string) blog.Outcome[blog.CommentView] {
	return s.get
}
func (s *stubComments) Delete(ctx context.Context, caller client.Caller, id string) blog.Outcome[blog.CommentView] {
	return s.del
}
func (s *stubComments) ListByPost(ctx context.Context, postID string, page, perPage int) blog.Outcome[blog.CommentListing] {
	return s.list
}

type stubUsers struct {
	get    blog.Outcome[blog.UserProfile]
	update blog.Outcome[blog.UserProfile]
	create blog.Outcome[blog.UserProfile]
}

func (s *stubUsers) GetProfile(ctx context.Context, username string) blog.Outcome[blog.UserProfile] {
	return s.get
}
func (s *stubUsers) UpdateBio(ctx context.Context, caller client.Caller, username, bio string) blog.Outcome[blog.UserProfile] {
	return s.update
}
func (s *stubUsers) CreateProfile(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile] {
	return s.create
}

// injectPrincipal plays the role of the auth middleware in tests.
func injectPrincipal(p *blog.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p != nil {
				ctx := middleware.WithPrincipal(c.Request().Context(), p)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

func newTestServer(posts usecase.PostService, comments usecase.CommentService, users usecase.UserDirectory, p *blog.Principal) *echo.Echo {
	h := NewHandler(
		usecase.NewPostUsecase(posts, comments),
		usecase.NewCommentUsecase(posts, comments),
		usecase.NewProfileUsecase(users, posts),
		nil, nil, 0,
	)

	e := echo.New()
	api := e.Group("/api", injectPrincipal(p))
	api.GET("/posts", h.handleRecentPosts)
	api.POST("/posts", h.handleCreatePost)
	api.GET("/posts/:id", h.handlePostDetail)
	api.POST("/posts/:id/edit", h.handleEditPost)
	api.POST("/posts/:id/delete", h.handleDeletePost)
	api.POST("/posts/:id/comments", h.handleAddComment)
	api.POST("/comments/:id/delete", h.handleDeleteComment)
	api.GET("/u/:username", h.handleProfile)
	api.POST("/u/:username", h.handleUpdateBio)
	api.GET("/me", h.handleMe)
	e.POST("/auth/session", h.handleLogin)
	e.POST("/auth/logout", h.handleLogout)
	return e
}

func perform(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) presenter.Envelope {
	t.Helper()
	var env presenter.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	return env
}

func TestPostDetailAggregates(t *testing.T) {
	posts := &stubPosts{get: blog.Ok(blog.PostView{ID: "p1", Title: "hello"})}
	comments := &stubComments{list: blog.Ok(blog.CommentListing{
		Items: []blog.CommentView{{ID: "c1", PostID: "p1", Content: "hi"}},
		Total: 1,
	})}

	e := newTestServer(posts, comments, &stubUsers{}, nil)
	rec := perform(e, http.MethodGet, "/api/posts/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	env := decode(t, rec)
	if !env.Success || len(env.Warnings) != 0 {
		t.Errorf("envelope mismatch: %+v", env)
	}
}

func TestPostDetailDegradesTo200WithWarning(t *testing.T) {
	posts := &stubPosts{get: blog.Ok(blog.PostView{ID: "p1"})}
	comments := &stubComments{list: blog.Upstream[blog.CommentListing]("connection refused")}

	e := newTestServer(posts, comments, &stubUsers{}, nil)
	rec := perform(e, http.MethodGet, "/api/posts/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	env := decode(t, rec)
	if len(env.Warnings) == 0 {
		t.Error("degraded page should carry a warning")
	}
}

func TestPostDetailNotFound(t *testing.T) {
	posts := &stubPosts{get: blog.NotFound[blog.PostView]()}
	e := newTestServer(posts, &stubComments{}, &stubUsers{}, nil)

	rec := perform(e, http.MethodGet, "/api/posts/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestUpstreamFailureIs502Never500(t *testing.T) {
	posts := &stubPosts{get: blog.Upstream[blog.PostView]("boom")}
	e := newTestServer(posts, &stubComments{}, &stubUsers{}, nil)

	rec := perform(e, http.MethodGet, "/api/posts/p1", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, want 502", rec.Code)
	}
	env := decode(t, rec)
	if strings.Contains(env.Message, "boom") {
		t.Error("upstream detail must not leak to the caller")
	}
}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	e := newTestServer(&stubPosts{}, &stubComments{}, &stubUsers{}, nil)
	rec := perform(e, http.MethodPost, "/api/posts", `{"title": "t", "content": "c"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestCreatePostAuthenticated(t *testing.T) {
	posts := &stubPosts{create: blog.Ok(blog.PostView{ID: "p1", Title: "t"})}
	principal := &blog.Principal{ID: "u1", DisplayName: "alice"}

	e := newTestServer(posts, &stubComments{}, &stubUsers{}, principal)
	rec := perform(e, http.MethodPost, "/api/posts", `{"title": "t", "content": "c"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201", rec.Code)
	}
}

func TestEditPostForbidden(t *testing.T) {
	posts := &stubPosts{get: blog.Ok(blog.PostView{ID: "p1", AuthorID: "u1"})}
	principal := &blog.Principal{ID: "u2", DisplayName: "mallory"}

	e := newTestServer(posts, &stubComments{}, &stubUsers{}, principal)
	rec := perform(e, http.MethodPost, "/api/posts/p1/edit", `{"title": "t", "content": "c"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want 403", rec.Code)
	}
}

func TestMeAnonymous(t *testing.T) {
	e := newTestServer(&stubPosts{}, &stubComments{}, &stubUsers{}, nil)
	rec := perform(e, http.MethodGet, "/api/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestMeAuthenticated(t *testing.T) {
	principal := &blog.Principal{ID: "u1", DisplayName: "alice"}
	e := newTestServer(&stubPosts{}, &stubComments{}, &stubUsers{}, principal)

	rec := perform(e, http.MethodGet, "/api/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestLoginDisabledInTokenMode(t *testing.T) {
	e := newTestServer(&stubPosts{}, &stubComments{}, &stubUsers{}, nil)
	rec := perform(e, http.MethodPost, "/auth/session", `{"idToken": "x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestProfileNotFound(t *testing.T) {
	users := &stubUsers{get: blog.NotFound[blog.UserProfile]()}
	e := newTestServer(&stubPosts{}, &stubComments{}, users, nil)

	rec := perform(e, http.MethodGet, "/api/u/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestProfileDegradesTo200WithWarning(t *testing.T) {
	users := &stubUsers{get: blog.Ok(blog.UserProfile{ID: "u1", Username: "alice"})}
	posts := &stubPosts{byUser: blog.Upstream[[]blog.PostView]("timeout")}

	e := newTestServer(posts, &stubComments{}, users, nil)
	rec := perform(e, http.MethodGet, "/api/u/alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	env := decode(t, rec)
	if len(env.Warnings) == 0 {
		t.Error("degraded page should carry a warning")
	}
}
