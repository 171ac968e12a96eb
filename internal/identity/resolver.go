// Package identity resolves "who is calling" for each gateway request,
// either from a server-held session or from a bearer token verified
// against the identity provider.
package identity

import (
	"context"
	"log/slog"

	blog "github.com/Esteban8482/blog-platform"
)

// Directory is the slice of the user directory used for lazy registration.
type Directory interface {
	CreateProfile(ctx context.Context, id, username string) blog.Outcome[blog.UserProfile]
}

// Resolver produces the request principal using the deployment's configured
// strategy. Exactly one of sessions or verifier is active.
type Resolver struct {
	mode      string
	sessions  *SessionStore
	verifier  *Verifier
	directory Directory
}

func NewResolver(mode string, sessions *SessionStore, verifier *Verifier, directory Directory) *Resolver {
	return &Resolver{
		mode:      mode,
		sessions:  sessions,
		verifier:  verifier,
		directory: directory,
	}
}

func (r *Resolver) Mode() string {
	return r.mode
}

// ResolveSession maps a session cookie value to its principal, or nil when
// the session is absent, tampered or expired.
func (r *Resolver) ResolveSession(ctx context.Context, cookieValue string) *blog.Principal {
	if r.sessions == nil || cookieValue == "" {
		return nil
	}
	p, err := r.sessions.Resolve(ctx, cookieValue)
	if err != nil {
		slog.WarnContext(ctx, "session lookup failed",
			slog.String("error", err.Error()),
			slog.String("module", "identity"),
		)
		return nil
	}
	return p
}

// ResolveToken verifies a bearer token and, on success, lazily registers
// the principal in the user directory. Verification failures resolve to
// nil, never to an error the caller could leak.
func (r *Resolver) ResolveToken(ctx context.Context, token string) *blog.Principal {
	if r.verifier == nil || token == "" {
		return nil
	}
	p, err := r.verifier.Verify(ctx, token)
	if err != nil {
		slog.DebugContext(ctx, "token rejected",
			slog.String("error", err.Error()),
			slog.String("module", "identity"),
		)
		return nil
	}

	r.ensureProfile(ctx, p)
	return p
}

// EnsureProfile registers a profile for the principal if none exists.
// "Already exists" is success: registration is idempotent. An upstream
// failure is logged and tolerated; the request proceeds without a profile
// and the directory catches up on the next login.
func (r *Resolver) ensureProfile(ctx context.Context, p *blog.Principal) {
	if r.directory == nil {
		return
	}
	out := r.directory.CreateProfile(ctx, p.ID, p.DisplayName)
	switch out.Kind {
	case blog.KindOk, blog.KindConflict:
		return
	default:
		slog.WarnContext(ctx, "lazy profile registration failed",
			slog.String("kind", out.Kind.String()),
			slog.String("detail", out.Detail),
			slog.String("module", "identity"),
		)
	}
}
