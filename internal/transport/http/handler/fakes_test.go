package handler_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/payment"
	"github.com/stavrosk/checkout-gate/internal/transport/http/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func newTestEngine() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	return r
}

// ---- fakes for the handlers' point-of-use interfaces ----

type fakeAccess struct {
	canAccess     func(ctx context.Context, userID, productID string) (bool, error)
	ownedProducts func(ctx context.Context, userID string) ([]string, error)
}

func (f *fakeAccess) CanAccess(ctx context.Context, userID, productID string) (bool, error) {
	return f.canAccess(ctx, userID, productID)
}

func (f *fakeAccess) OwnedProducts(ctx context.Context, userID string) ([]string, error) {
	return f.ownedProducts(ctx, userID)
}

type fakeReconciler struct {
	confirmReturn  func(ctx context.Context, sessionID, productID string) (*domain.User, error)
	confirmWebhook func(ctx context.Context, payload []byte, signatureHeader string) error
}

func (f *fakeReconciler) ConfirmReturn(ctx context.Context, sessionID, productID string) (*domain.User, error) {
	return f.confirmReturn(ctx, sessionID, productID)
}

func (f *fakeReconciler) ConfirmWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	return f.confirmWebhook(ctx, payload, signatureHeader)
}

type fakeMagicLinker struct {
	request func(ctx context.Context, email string) error
	redeem  func(ctx context.Context, rawToken string) (*domain.User, error)
}

func (f *fakeMagicLinker) Request(ctx context.Context, email string) error {
	return f.request(ctx, email)
}

func (f *fakeMagicLinker) Redeem(ctx context.Context, rawToken string) (*domain.User, error) {
	return f.redeem(ctx, rawToken)
}

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
