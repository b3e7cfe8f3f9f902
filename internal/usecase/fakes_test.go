package usecase_test

import (
	"context"
	"time"

	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/payment"
)

// ---- repository fakes ----

type fakeUserRepo struct {
	findOrCreate func(ctx context.Context, email string) (*domain.User, error)
	findByID     func(ctx context.Context, id string) (*domain.User, error)
	findByEmail  func(ctx context.Context, email string) (*domain.User, error)
}

func (r *fakeUserRepo) FindOrCreate(ctx context.Context, email string) (*domain.User, error) {
	return r.findOrCreate(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

type fakePurchaseRepo struct {
	create          func(ctx context.Context, userID, productID, sessionID string, amount int64) (*domain.Purchase, bool, error)
	findBySessionID func(ctx context.Context, sessionID string) (*domain.Purchase, error)
	exists          func(ctx context.Context, userID, productID string) (bool, error)
	listProductIDs  func(ctx context.Context, userID string) ([]string, error)
}

func (r *fakePurchaseRepo) Create(ctx context.Context, userID, productID, sessionID string, amount int64) (*domain.Purchase, bool, error) {
	return r.create(ctx, userID, productID, sessionID, amount)
}

func (r *fakePurchaseRepo) FindBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error) {
	return r.findBySessionID(ctx, sessionID)
}

func (r *fakePurchaseRepo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	return r.exists(ctx, userID, productID)
}

func (r *fakePurchaseRepo) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	return r.listProductIDs(ctx, userID)
}

type fakeLinkRepo struct {
	createLink func(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
	claim      func(ctx context.Context, tokenHash string, now time.Time) (string, error)
}

func (r *fakeLinkRepo) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	return r.createLink(ctx, email, tokenHash, expiresAt)
}

func (r *fakeLinkRepo) Claim(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	return r.claim(ctx, tokenHash, now)
}

// ---- gateway and delivery fakes ----

type fakeGateway struct {
	createCheckout  func(ctx context.Context, in payment.CheckoutInput) (string, error)
	retrieveSession func(ctx context.Context, sessionID string) (*payment.Session, error)
	verifyWebhook   func(payload []byte, signatureHeader string) (*payment.Event, error)
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, in payment.CheckoutInput) (string, error) {
	return g.createCheckout(ctx, in)
}

func (g *fakeGateway) RetrieveSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	return g.retrieveSession(ctx, sessionID)
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*payment.Event, error) {
	return g.verifyWebhook(payload, signatureHeader)
}

type fakeLinkIssuer struct {
	issue func(ctx context.Context, email string) error
}

func (i *fakeLinkIssuer) Issue(ctx context.Context, email string) error {
	return i.issue(ctx, email)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}
