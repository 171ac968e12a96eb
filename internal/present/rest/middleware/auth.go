package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	blog "github.com/Esteban8482/blog-platform"
	"github.com/Esteban8482/blog-platform/internal/domain"
	"github.com/Esteban8482/blog-platform/internal/identity"
)

var tracer = otel.Tracer("auth")

// principalKey is unexported so no other package can collide with the
// principal entry; access goes through WithPrincipal and PrincipalFrom.
type principalKey struct{}

type AuthMiddleware struct {
	resolver *identity.Resolver
}

func NewAuthMiddleware(resolver *identity.Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// IdentifyIdentity resolves the caller once per request and stores the
// principal in the request context. Anonymous requests pass through
// untouched; whether identity is required is decided per usecase.
func (m *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		var principal *blog.Principal

		switch m.resolver.Mode() {
		case domain.AuthModeSession:
			if cookie, err := c.Cookie(domain.SessionCookieName); err == nil {
				principal = m.resolver.ResolveSession(ctx, cookie.Value)
			}
		case domain.AuthModeToken:
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				principal = m.resolver.ResolveToken(ctx, token)
			}
		}

		if principal != nil {
			ctx = WithPrincipal(ctx, principal)
			span.SetAttributes(attribute.String("RequesterId", principal.ID))
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// WithPrincipal stores the resolved principal in the context.
func WithPrincipal(ctx context.Context, p *blog.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal resolved for this request, or nil
// for an anonymous caller.
func PrincipalFrom(ctx context.Context) *blog.Principal {
	p, _ := ctx.Value(principalKey{}).(*blog.Principal)
	return p
}
