package session_test

import (
	"errors"
	"testing"

	"github.com/stavrosk/checkout-gate/internal/session"
)

const testSecret = "test-session-secret-at-least-32-chars"

func TestIssueParse_RoundTrip(t *testing.T) {
	m := session.NewManager([]byte(testSecret))

	token, err := m.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("userID = %q, want %q", userID, "user-42")
	}
}

func TestParse_Garbage(t *testing.T) {
	m := session.NewManager([]byte(testSecret))

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Parse(raw); !errors.Is(err, session.ErrTokenInvalid) {
			t.Errorf("Parse(%q) err = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestParse_WrongKey(t *testing.T) {
	issuer := session.NewManager([]byte(testSecret))
	verifier := session.NewManager([]byte("another-session-secret-32-characters!"))

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, session.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestParse_TamperedToken(t *testing.T) {
	m := session.NewManager([]byte(testSecret))

	token, err := m.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.Parse(tampered); !errors.Is(err, session.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
