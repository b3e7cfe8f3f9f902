package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/email"
	"github.com/stavrosk/checkout-gate/internal/metrics"
	"github.com/stavrosk/checkout-gate/internal/repository"
)

const defaultLinkTTL = 24 * time.Hour

type MagicLinkUsecase struct {
	links    repository.MagicLinkRepository
	users    repository.UserRepository
	email    email.Sender
	linkBase string
	linkTTL  time.Duration
	now      func() time.Time
}

func NewMagicLinkUsecase(links repository.MagicLinkRepository, users repository.UserRepository, emailSender email.Sender, linkBase string) *MagicLinkUsecase {
	return &MagicLinkUsecase{
		links:    links,
		users:    users,
		email:    emailSender,
		linkBase: linkBase,
		linkTTL:  defaultLinkTTL,
		now:      time.Now,
	}
}

// Issue generates a fresh single-use token for the email, stores its
// hash, and sends the login link. Callers are responsible for deciding
// whether the email is allowed a link; this path does not require an
// existing user (the purchase flow creates one first).
func (u *MagicLinkUsecase) Issue(ctx context.Context, emailAddr string) error {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	rawToken := base64.RawURLEncoding.EncodeToString(raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	expiresAt := u.now().Add(u.linkTTL)
	if err := u.links.Create(ctx, emailAddr, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("store magic link: %w", err)
	}

	link := u.linkBase + "/login/" + rawToken
	subject := "Your sign-in link"
	body := fmt.Sprintf(
		`<p>Click the link below to sign in (expires in 24 hours):</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}

	metrics.MagicLinksIssuedTotal.Inc()
	return nil
}

// Request is the explicit "send me a login link" path. Unknown emails
// are silently ignored so the endpoint cannot be used to probe which
// addresses have accounts.
func (u *MagicLinkUsecase) Request(ctx context.Context, emailAddr string) error {
	_, err := u.users.FindByEmail(ctx, emailAddr)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	return u.Issue(ctx, emailAddr)
}

// Redeem claims the token and resolves it to a user, creating one if
// the purchase flow issued the link before the user row existed. The
// claim is atomic; a link honors exactly one redemption.
func (u *MagicLinkUsecase) Redeem(ctx context.Context, rawToken string) (*domain.User, error) {
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	emailAddr, err := u.links.Claim(ctx, tokenHash, u.now())
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindOrCreate(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}
