package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer   = "https://issuer.example"
	testAudience = "blog"
	testKid      = "key-1"
)

func newJWKSServer(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKid,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(doc)
	}))
}

func mintToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func baseClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   testIssuer,
		"aud":   testAudience,
		"sub":   "user-1",
		"name":  "Alice",
		"email": "alice@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	p, err := v.Verify(context.Background(), mintToken(t, key, testKid, baseClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "user-1" || p.DisplayName != "Alice" || p.Email != "alice@example.com" {
		t.Errorf("principal mismatch: %+v", p)
	}
}

func TestVerifyFallsBackToEmailLocalPart(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	claims := baseClaims()
	delete(claims, "name")

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	p, err := v.Verify(context.Background(), mintToken(t, key, testKid, claims))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DisplayName != "alice" {
		t.Errorf("got display name %q, want alice", p.DisplayName)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	claims := baseClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	if _, err := v.Verify(context.Background(), mintToken(t, key, testKid, claims)); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestVerifyLeewayToleratesSkew(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	claims := baseClaims()
	claims["exp"] = time.Now().Add(-10 * time.Second).Unix()

	v := NewVerifier(testIssuer, testAudience, server.URL, time.Minute)
	if _, err := v.Verify(context.Background(), mintToken(t, key, testKid, claims)); err != nil {
		t.Fatalf("skewed token within leeway should verify: %v", err)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	claims := baseClaims()
	claims["iss"] = "https://impostor.example"

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	if _, err := v.Verify(context.Background(), mintToken(t, key, testKid, claims)); err == nil {
		t.Fatal("token from another issuer should be rejected")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	if _, err := v.Verify(context.Background(), mintToken(t, foreign, testKid, baseClaims())); err == nil {
		t.Fatal("token signed with a foreign key should be rejected")
	}
}

func TestVerifyRejectsUnknownKeyID(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	server := newJWKSServer(t, &key.PublicKey)
	defer server.Close()

	v := NewVerifier(testIssuer, testAudience, server.URL, 0)
	if _, err := v.Verify(context.Background(), mintToken(t, key, "key-unknown", baseClaims())); err == nil {
		t.Fatal("token naming an unpublished key should be rejected")
	}
}
