package usecase_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/usecase"
)

const testLinkBase = "http://localhost:8080"

var testUser = &domain.User{ID: "user-1", Email: "test@example.com"}

// ---- Issue ----

func TestIssue_StoresHashOfEmailedToken(t *testing.T) {
	var capturedHash string
	var capturedBody string

	links := &fakeLinkRepo{
		createLink: func(_ context.Context, _, tokenHash string, _ time.Time) error {
			capturedHash = tokenHash
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, body string) error {
			capturedBody = body
			return nil
		},
	}

	uc := usecase.NewMagicLinkUsecase(links, &fakeUserRepo{}, sender, testLinkBase)
	if err := uc.Issue(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Extract the raw token from the link embedded in the email body.
	idx := strings.Index(capturedBody, "/login/")
	if idx == -1 {
		t.Fatal("email body does not contain /login/")
	}
	rawToken := strings.SplitN(capturedBody[idx+len("/login/"):], `"`, 2)[0]

	wantHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))
	if capturedHash != wantHash {
		t.Errorf("stored hash %q != SHA-256 of emailed token %q", capturedHash, wantHash)
	}
}

func TestIssue_24HourExpiry(t *testing.T) {
	var capturedExpiry time.Time

	links := &fakeLinkRepo{
		createLink: func(_ context.Context, _, _ string, expiresAt time.Time) error {
			capturedExpiry = expiresAt
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return nil },
	}

	uc := usecase.NewMagicLinkUsecase(links, &fakeUserRepo{}, sender, testLinkBase)
	before := time.Now()
	if err := uc.Issue(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := before.Add(24 * time.Hour)
	if capturedExpiry.Before(want) || capturedExpiry.After(want.Add(time.Minute)) {
		t.Errorf("expiry = %v, want ~%v", capturedExpiry, want)
	}
}

func TestIssue_TokensAreUnique(t *testing.T) {
	seen := map[string]bool{}

	links := &fakeLinkRepo{
		createLink: func(_ context.Context, _, tokenHash string, _ time.Time) error {
			if seen[tokenHash] {
				t.Fatalf("token hash %q issued twice", tokenHash)
			}
			seen[tokenHash] = true
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return nil },
	}

	uc := usecase.NewMagicLinkUsecase(links, &fakeUserRepo{}, sender, testLinkBase)
	for i := 0; i < 50; i++ {
		if err := uc.Issue(context.Background(), testUser.Email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

// ---- Request ----

func TestRequest_UnknownEmail_SilentNoop(t *testing.T) {
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	links := &fakeLinkRepo{
		createLink: func(_ context.Context, _, _ string, _ time.Time) error {
			t.Fatal("link must not be created for an unknown email")
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			t.Fatal("email must not be sent for an unknown email")
			return nil
		},
	}

	uc := usecase.NewMagicLinkUsecase(links, users, sender, testLinkBase)
	if err := uc.Request(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequest_KnownEmail_IssuesLink(t *testing.T) {
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
	}

	created := false
	links := &fakeLinkRepo{
		createLink: func(_ context.Context, email, _ string, _ time.Time) error {
			if email != testUser.Email {
				t.Errorf("link email = %q, want %q", email, testUser.Email)
			}
			created = true
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return nil },
	}

	uc := usecase.NewMagicLinkUsecase(links, users, sender, testLinkBase)
	if err := uc.Request(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected a link to be created")
	}
}

// ---- Redeem ----

func TestRedeem_ClaimsHashAndResolvesUser(t *testing.T) {
	var claimedHash string
	links := &fakeLinkRepo{
		claim: func(_ context.Context, tokenHash string, _ time.Time) (string, error) {
			claimedHash = tokenHash
			return testUser.Email, nil
		},
	}
	users := &fakeUserRepo{
		findOrCreate: func(_ context.Context, email string) (*domain.User, error) {
			if email != testUser.Email {
				t.Errorf("email = %q, want %q", email, testUser.Email)
			}
			return testUser, nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error { return nil },
	}

	uc := usecase.NewMagicLinkUsecase(links, users, sender, testLinkBase)
	user, err := uc.Redeem(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != testUser.ID {
		t.Errorf("user ID = %q, want %q", user.ID, testUser.ID)
	}

	wantHash := fmt.Sprintf("%x", sha256.Sum256([]byte("raw-token")))
	if claimedHash != wantHash {
		t.Errorf("claimed hash %q != SHA-256 of raw token %q", claimedHash, wantHash)
	}
}

func TestRedeem_ClaimFailuresPassThrough(t *testing.T) {
	for _, want := range []error{domain.ErrLinkNotFound, domain.ErrLinkUsed, domain.ErrLinkExpired} {
		links := &fakeLinkRepo{
			claim: func(_ context.Context, _ string, _ time.Time) (string, error) {
				return "", want
			},
		}
		sender := &fakeEmailSender{
			send: func(_ context.Context, _, _, _ string) error { return nil },
		}

		uc := usecase.NewMagicLinkUsecase(links, &fakeUserRepo{}, sender, testLinkBase)
		_, err := uc.Redeem(context.Background(), "raw-token")
		if !errors.Is(err, want) {
			t.Errorf("err = %v, want %v", err, want)
		}
	}
}
