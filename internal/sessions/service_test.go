package sessions

import (
	"context"
	"testing"
	"time"
)

func TestCreateAndValidateSession(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "sub-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r == "" {
		t.Fatalf("expected refresh token")
	}

	sess, err := svc.ValidateRefresh(ctx, r)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if sess == nil || sess.Sub != "sub-1" {
		t.Fatalf("unexpected session: %v", sess)
	}

	if err := svc.DeleteRefresh(ctx, r); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	sess2, _ := svc.ValidateRefresh(ctx, r)
	if sess2 != nil {
		t.Fatalf("expected session removed")
	}
}

func TestValidateRefresh_Expired(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	sess := &Session{
		RefreshToken: "old",
		Sub:          "sub-x",
		CreatedAt:    time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt:    time.Now().UTC().Add(-time.Hour),
	}
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	got, err := svc.ValidateRefresh(ctx, "old")
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired session to be rejected")
	}
}
