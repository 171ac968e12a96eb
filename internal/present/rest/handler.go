package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/identity"
	"github.com/Esteban8482/blog-platform/internal/present/rest/middleware"
	"github.com/Esteban8482/blog-platform/internal/present/rest/presenter"
	"github.com/Esteban8482/blog-platform/internal/usecase"
)

type Handler struct {
	posts    *usecase.PostUsecase
	comments *usecase.CommentUsecase
	profiles *usecase.ProfileUsecase

	// verifier checks provider tokens at login; sessions is nil in token
	// mode, which disables the session endpoints.
	verifier   *identity.Verifier
	sessions   *identity.SessionStore
	sessionTTL time.Duration
}

func NewHandler(
	posts *usecase.PostUsecase,
	comments *usecase.CommentUsecase,
	profiles *usecase.ProfileUsecase,
	verifier *identity.Verifier,
	sessions *identity.SessionStore,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		posts:      posts,
		comments:   comments,
		profiles:   profiles,
		verifier:   verifier,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	api := e.Group("/api", auth.IdentifyIdentity)
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
}

func (h *Handler) handleRecentPosts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return presenter.BadRequest(c, "invalid limit parameter")
		}
		limit = parsed
	}

	return presenter.Respond(c, h.posts.Recent(ctx, limit, c.QueryParam("title")))
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) handleCreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, "invalid request body")
	}

	p := middleware.PrincipalFrom(ctx)
	return presenter.RespondCreated(c, h.posts.Create(ctx, p, req.Title, req.Content))
}

func (h *Handler) handlePostDetail(c echo.Context) error {
	ctx := c.Request().Context()
	return presenter.Respond(c, h.posts.Detail(ctx, c.Param("id")))
}

func (h *Handler) handleEditPost(c echo.Context) error {
	ctx := c.Request().Context()

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, "invalid request body")
	}

	p := middleware.PrincipalFrom(ctx)
	return presenter.Respond(c, h.posts.Edit(ctx, p, c.Param("id"), req.Title, req.Content))
}

func (h *Handler) handleDeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFrom(ctx)
	return presenter.Respond(c, h.posts.Delete(ctx, p, c.Param("id")))
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) handleAddComment(c echo.Context) error {
	ctx := c.Request().Context()

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, "invalid request body")
	}

	p := middleware.PrincipalFrom(ctx)
	return presenter.RespondCreated(c, h.comments.Add(ctx, p, c.Param("id"), req.Content))
}

func (h *Handler) handleDeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFrom(ctx)
	return presenter.Respond(c, h.comments.Delete(ctx, p, c.Param("id")))
}

func (h *Handler) handleProfile(c echo.Context) error {
	ctx := c.Request().Context()
	return presenter.Respond(c, h.profiles.View(ctx, c.Param("username")))
}

type bioRequest struct {
	Bio string `json:"bio"`
}

func (h *Handler) handleUpdateBio(c echo.Context) error {
	ctx := c.Request().Context()

	var req bioRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, "invalid request body")
	}

	p := middleware.PrincipalFrom(ctx)
	return presenter.Respond(c, h.profiles.UpdateBio(ctx, p, c.Param("username"), req.Bio))
}

func (h *Handler) handleMe(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFrom(ctx)
	if p == nil {
		return presenter.Respond(c, blog.Unauthorized[blog.Principal]())
	}
	return presenter.Respond(c, blog.Ok(*p))
}

type loginRequest struct {
	IDToken string `json:"idToken"`
}

// handleLogin exchanges a verified provider token for a server-held
// session. Registration is lazy and idempotent: the profile is created on
// first login and found on every later one. The whole exchange is not
// atomic — when the directory fails after verification succeeded, the
// provider account exists without a profile and the failure is reported;
// the next login retries the upsert.
func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	if h.sessions == nil {
		return presenter.NotFound(c, "session login is not enabled")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil || req.IDToken == "" {
		return presenter.BadRequest(c, "missing idToken")
	}

	p, err := h.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return presenter.Respond(c, blog.Unauthorized[blog.Principal]())
	}

	ensured := h.profiles.Ensure(ctx, p.ID, p.DisplayName)
	if ensured.Failed() {
		return presenter.Respond(c, blog.ForwardFailure[blog.Principal](ensured))
	}

	token, err := h.sessions.Create(ctx, *p)
	if err != nil {
		return presenter.Respond(c, blog.Upstream[blog.Principal](err.Error()))
	}

	c.SetCookie(&http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return presenter.Respond(c, blog.Ok(*p))
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if h.sessions == nil {
		return presenter.NotFound(c, "session login is not enabled")
	}

	if cookie, err := c.Cookie(domain.SessionCookieName); err == nil {
		_ = h.sessions.Delete(ctx, cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return presenter.Respond(c, blog.Ok(struct{}{}))
}
