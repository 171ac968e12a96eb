// Package postsvc implements the post service. It owns post records and
// answers in the success/message envelope with post or posts payloads.
package postsvc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
)

const maxListLimit = 100

type Repository interface {
	Create(ctx context.Context, title, content, authorID, authorName string) (blog.PostView, error)
	Get(ctx context.Context, id string) (blog.PostView, error)
	Update(ctx context.Context, id, title, content string) (blog.PostView, error)
	Delete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, authorID string) ([]blog.PostView, error)
	ListRecent(ctx context.Context, limit int, title string) ([]blog.PostView, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/post/:id", h.GetPost)
	e.POST("/post/new", h.CreatePost)
	e.POST("/post/:id/edit", h.EditPost)
	e.POST("/post/:id/delete", h.DeletePost)
	e.GET("/post/user/:id", h.ListByUser)
	e.GET("/post/limit/:n", h.ListRecent)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Post    any    `json:"post,omitempty"`
	Posts   any    `json:"posts,omitempty"`
}

func okPost(c echo.Context, status int, post any) error {
	return c.JSON(status, envelope{Success: true, Post: post})
}

func okPosts(c echo.Context, posts []blog.PostView) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Posts: posts})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Message: message})
}

func failFrom(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, http.StatusNotFound, "post not found")
	}
	slog.Error("post service failure", slog.String("error", err.Error()))
	return fail(c, http.StatusInternalServerError, "internal error")
}

func (h *Handler) GetPost(c echo.Context) error {
	post, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err)
	}
	return okPost(c, http.StatusOK, post)
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}

func (h *Handler) CreatePost(c echo.Context) error {
	author := c.Request().Header.Get(domain.UserIDHeader)
	if author == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "title and content are required")
	}

	post, err := h.repo.Create(c.Request().Context(), req.Title, req.Content, author, req.Username)
	if err != nil {
		return failFrom(c, err)
	}
	return okPost(c, http.StatusCreated, post)
}

// EditPost rewrites a post's title and content. Only the author may edit.
func (h *Handler) EditPost(c echo.Context) error {
	requester := c.Request().Header.Get(domain.UserIDHeader)
	if requester == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "title and content are required")
	}

	id := c.Param("id")
	post, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return failFrom(c, err)
	}
	if post.AuthorID != requester {
		return fail(c, http.StatusForbidden, "not your post")
	}

	updated, err := h.repo.Update(c.Request().Context(), id, req.Title, req.Content)
	if err != nil {
		return failFrom(c, err)
	}
	return okPost(c, http.StatusOK, updated)
}

func (h *Handler) DeletePost(c echo.Context) error {
	requester := c.Request().Header.Get(domain.UserIDHeader)
	if requester == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	id := c.Param("id")
	post, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return failFrom(c, err)
	}
	if post.AuthorID != requester {
		return fail(c, http.StatusForbidden, "not your post")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return failFrom(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "post deleted"})
}

func (h *Handler) ListByUser(c echo.Context) error {
	posts, err := h.repo.ListByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err)
	}
	return okPosts(c, posts)
}

func (h *Handler) ListRecent(c echo.Context) error {
	limit, err := strconv.Atoi(c.Param("n"))
	if err != nil || limit < 1 {
		return fail(c, http.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	posts, err := h.repo.ListRecent(c.Request().Context(), limit, c.QueryParam("title"))
	if err != nil {
		return failFrom(c, err)
	}
	return okPosts(c, posts)
}
