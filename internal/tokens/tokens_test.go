package tokens

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/config"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: "user-123", Name: "Test User", Email: "test@example.com"}
}

func TestGenerateAndVerifyRoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-32-bytes-should-be-long-enough"

	tokenStr, err := GenerateAccessToken(cfg, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	ver, err := NewVerifier(cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}
	tok, err := ver.Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	var claims map[string]interface{}
	if err := tok.Claims(&claims); err != nil {
		t.Fatalf("Claims error: %v", err)
	}
	if claims["sub"] != "user-123" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["email"] != "test@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret-32-bytes-longgggg"

	tokenStr, err := GenerateAccessToken(cfg, testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	ver, _ := NewVerifier(cfg.JWT.Secret)
	if _, err := ver.Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secret-one-32-bytes-xxxxxxxxxxxxxxxx"

	tokenStr, err := GenerateAccessToken(cfg, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	ver, _ := NewVerifier("different-secret-xxxxxxxxxxxxxxxx")
	if _, err := ver.Verify(context.Background(), tokenStr); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."

	ver, _ := NewVerifier("x-secret-xxxxxxxxxxxxxxxxxxxxxxxxx")
	if _, err := ver.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected alg=none token to be rejected")
	}
}

func TestVerify_Malformed(t *testing.T) {
	ver, _ := NewVerifier("x-secret-xxxxxxxxxxxxxxxxxxxxxxxxx")
	if _, err := ver.Verify(context.Background(), "not.a.jwt"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	if _, err := NewVerifier(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
