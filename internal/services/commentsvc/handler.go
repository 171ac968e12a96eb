// Package commentsvc implements the comments service. Success responses
// are bare JSON objects, failures carry an error field, and listings are
// paged under items/total/page/per_page.
package commentsvc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
)

const (
	defaultPerPage = 50
	maxPerPage     = 200
)

type Repository interface {
	Create(ctx context.Context, postID, authorID, authorName, content string) (blog.CommentView, error)
	Get(ctx context.Context, id string) (blog.CommentView, error)
	SoftDelete(ctx context.Context, id string) (blog.CommentView, error)
	ListByPost(ctx context.Context, postID string, page, perPage int) (blog.CommentListing, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/comments", h.CreateComment)
	e.GET("/v1/comments", h.ListComments)
	e.GET("/v1/comments/:id", h.GetComment)
	e.DELETE("/v1/comments/:id", h.DeleteComment)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

func failFrom(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, http.StatusNotFound, "comment not found")
	}
	slog.Error("comments service failure", slog.String("error", err.Error()))
	return fail(c, http.StatusInternalServerError, "internal error")
}

type createRequest struct {
	PostID     string `json:"post_id"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
}

func (h *Handler) CreateComment(c echo.Context) error {
	author := c.Request().Header.Get(domain.UserIDHeader)
	if author == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	var req createRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.PostID = strings.TrimSpace(req.PostID)
	req.Content = strings.TrimSpace(req.Content)
	if req.PostID == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "post_id and content are required")
	}
	if utf8.RuneCountInString(req.Content) > domain.MaxCommentLength {
		return fail(c, http.StatusBadRequest, "comment is too long")
	}

	comment, err := h.repo.Create(c.Request().Context(), req.PostID, author, req.AuthorName, req.Content)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) GetComment(c echo.Context) error {
	comment, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment soft-deletes a comment. The author may always delete
// their own; the moderator role header grants deletion of any comment.
func (h *Handler) DeleteComment(c echo.Context) error {
	requester := c.Request().Header.Get(domain.UserIDHeader)
	if requester == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	comment, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err)
	}

	moderator := c.Request().Header.Get(domain.UserRoleHeader) == blog.RoleModerator
	if comment.AuthorID != requester && !moderator {
		return fail(c, http.StatusForbidden, "not your comment")
	}

	deleted, err := h.repo.SoftDelete(c.Request().Context(), comment.ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(http.StatusOK, deleted)
}

func (h *Handler) ListComments(c echo.Context) error {
	postID := c.QueryParam("post_id")
	if postID == "" {
		return fail(c, http.StatusBadRequest, "post_id is required")
	}

	page := intParam(c.QueryParam("page"), 1)
	perPage := intParam(c.QueryParam("per_page"), defaultPerPage)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	listing, err := h.repo.ListByPost(c.Request().Context(), postID, page, perPage)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
