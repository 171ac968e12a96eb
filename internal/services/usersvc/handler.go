// Package usersvc implements the user directory service. It owns profile
// records and answers in the directory's success/message envelope.
package usersvc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, id, username string) (blog.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (blog.UserProfile, error)
	UpdateBio(ctx context.Context, username, bio string) (blog.UserProfile, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/u/:username", h.GetProfile)
	e.POST("/u/:username", h.UpdateBio)
	e.POST("/u/new", h.CreateProfile)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Message: message})
}

func failFrom(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, http.StatusNotFound, "user not found")
	}
	if errors.Is(err, domain.ErrConflict) {
		return fail(c, http.StatusConflict, "user already exists")
	}
	slog.Error("user directory failure", slog.String("error", err.Error()))
	return fail(c, http.StatusInternalServerError, "internal error")
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.repo.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return failFrom(c, err)
	}
	return ok(c, http.StatusOK, profile)
}

type bioRequest struct {
	Bio string `json:"bio"`
}

// UpdateBio changes a profile's bio. Only the profile owner, identified
// by the forwarded user id header, may write.
func (h *Handler) UpdateBio(c echo.Context) error {
	requester := c.Request().Header.Get(domain.UserIDHeader)
	if requester == "" {
		return fail(c, http.StatusUnauthorized, "authentication required")
	}

	var req bioRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	username := c.Param("username")
	profile, err := h.repo.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return failFrom(c, err)
	}
	if profile.ID != requester {
		return fail(c, http.StatusForbidden, "not your profile")
	}

	updated, err := h.repo.UpdateBio(c.Request().Context(), username, strings.TrimSpace(req.Bio))
	if err != nil {
		return failFrom(c, err)
	}
	return ok(c, http.StatusOK, updated)
}

type createRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *Handler) CreateProfile(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Username = strings.TrimSpace(req.Username)
	if req.ID == "" || req.Username == "" {
		return fail(c, http.StatusBadRequest, "id and username are required")
	}

	profile, err := h.repo.Create(c.Request().Context(), req.ID, req.Username)
	if err != nil {
		return failFrom(c, err)
	}
	return ok(c, http.StatusCreated, profile)
}
