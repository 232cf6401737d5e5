package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rarebeats-player/internal/config"
)

func TestNonceIssueAndVerify(t *testing.T) {
	svc := NewNonceService(config.NonceConfig{Secret: "test-secret", TTLHours: 1})
	token, err := svc.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := svc.Verify(token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestNonceRejectsForeignSecretAndGarbage(t *testing.T) {
	issuer := NewNonceService(config.NonceConfig{Secret: "one"})
	verifier := NewNonceService(config.NonceConfig{Secret: "two"})
	token, err := issuer.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := verifier.Verify(token); !errors.Is(err, ErrInvalidNonce) {
		t.Fatalf("want ErrInvalidNonce for foreign secret, got %v", err)
	}
	for _, bad := range []string{"", "  ", "not.a.jwt"} {
		if err := issuer.Verify(bad); !errors.Is(err, ErrInvalidNonce) {
			t.Fatalf("want ErrInvalidNonce for %q got %v", bad, err)
		}
	}
}

func TestNonceExpires(t *testing.T) {
	svc := NewNonceService(config.NonceConfig{Secret: "s", TTLHours: 1})
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if err := svc.Verify(token); !errors.Is(err, ErrInvalidNonce) {
		t.Fatalf("expired token should be rejected, got %v", err)
	}
}
