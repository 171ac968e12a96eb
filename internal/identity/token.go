package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	blog "github.com/Esteban8482/blog-platform"
)

var tracer = otel.Tracer("identity")

const keyFetchTimeout = 5 * time.Second

// providerClaims is the slice of the identity provider's token the gateway
// cares about.
type providerClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Verifier checks externally issued bearer tokens against the identity
// provider's published keys. The key set is read-mostly: it is cached and
// re-fetched on expiry or when a token names an unknown key id, so
// concurrent requests share it safely.
type Verifier struct {
	issuer   string
	audience string
	jwksURL  string
	leeway   time.Duration
	http     *http.Client
	keys     *cache.Cache
}

func NewVerifier(issuer, audience, jwksURL string, leeway time.Duration) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		jwksURL:  jwksURL,
		leeway:   leeway,
		http:     &http.Client{Timeout: keyFetchTimeout},
		keys:     cache.New(10*time.Minute, 15*time.Minute),
	}
}

// Verify parses and validates a token and shapes its claims into a
// Principal. The leeway tolerates small clock skew between issuance and
// verification. Any failure comes back as an error for the caller to
// translate into an anonymous request; the provider's fault never
// propagates further.
func (v *Verifier) Verify(ctx context.Context, token string) (*blog.Principal, error) {
	ctx, span := tracer.Start(ctx, "Identity.Verifier.Verify")
	defer span.End()

	parsed, err := jwt.ParseWithClaims(token, &providerClaims{}, v.keyFor(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(v.leeway),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token verification failed"))
		return nil, err
	}

	claims, ok := parsed.Claims.(*providerClaims)
	if !ok || claims.Subject == "" {
		err := fmt.Errorf("token has no subject")
		span.RecordError(err)
		return nil, err
	}

	return &blog.Principal{
		ID:          claims.Subject,
		DisplayName: blog.DisplayNameFallback(claims.Name, claims.Email, claims.Subject),
		Email:       claims.Email,
		Role:        claims.Role,
	}, nil
}

func (v *Verifier) keyFor(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key id")
		}

		if key, found := v.keys.Get(kid); found {
			return key.(*rsa.PublicKey), nil
		}

		if err := v.refreshKeys(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to refresh provider keys")
		}

		if key, found := v.keys.Get(kid); found {
			return key.(*rsa.PublicKey), nil
		}
		return nil, fmt.Errorf("unknown key id %s", kid)
	}
}

// jwksDocument is the provider's published key set. Only RSA keys are used.
type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from key endpoint", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode key set: %w", err)
	}

	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		key, err := parseRSAKey(k.N, k.E)
		if err != nil {
			continue
		}
		v.keys.Set(k.Kid, key, cache.DefaultExpiration)
	}

	return nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
