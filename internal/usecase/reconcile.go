package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/metrics"
	"github.com/stavrosk/checkout-gate/internal/payment"
	"github.com/stavrosk/checkout-gate/internal/repository"
)

// linkIssuer is the subset of MagicLinkUsecase the reconciler needs.
// Defined here (point of use) so tests can inject a fake.
type linkIssuer interface {
	Issue(ctx context.Context, email string) error
}

// ReconcileUsecase collapses the two confirmation paths for "payment
// for session S succeeded" — the provider's webhook and the buyer's
// redirect return — into one recorded purchase. Either path may run
// first, run twice, or run at the same time as the other; the unique
// constraints on users.email and purchases.sess_id arbitrate the races,
// and the repositories translate a lost insert race into "the row is
// already there".
type ReconcileUsecase struct {
	users     repository.UserRepository
	purchases repository.PurchaseRepository
	links     linkIssuer
	gateway   payment.Gateway
	logger    *slog.Logger
}

func NewReconcileUsecase(users repository.UserRepository, purchases repository.PurchaseRepository, links linkIssuer, gateway payment.Gateway, logger *slog.Logger) *ReconcileUsecase {
	return &ReconcileUsecase{
		users:     users,
		purchases: purchases,
		links:     links,
		gateway:   gateway,
		logger:    logger.With("component", "reconciler"),
	}
}

// ConfirmWebhook handles the provider-push path. It verifies the
// signature, records the purchase, and issues a magic link so the buyer
// can sign in later from any device. Every step is idempotent, so any
// returned error is safe to answer with a 4xx and let the provider
// redeliver.
func (u *ReconcileUsecase) ConfirmWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	ev, err := u.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("invalid").Inc()
		return err
	}
	if ev.Session == nil {
		metrics.WebhookEventsTotal.WithLabelValues("ignored").Inc()
		u.logger.DebugContext(ctx, "ignored webhook event", "type", ev.Type)
		return nil
	}

	conf := domain.Confirmation{
		SessionID: ev.Session.ID,
		Email:     ev.Session.Email,
		ProductID: ev.Session.ProductID,
		Amount:    ev.Session.Amount,
	}
	user, created, err := u.record(ctx, conf)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("error").Inc()
		metrics.ReconciliationsTotal.WithLabelValues("webhook", "error").Inc()
		return err
	}

	// Only the delivery that actually recorded the purchase sends a
	// link; redeliveries and the lost side of a race stay quiet.
	// A failed send is not retriable through the provider: a replay
	// finds the purchase already recorded and stays quiet. The buyer
	// can still request a link from /request-login, so log and move on.
	if created {
		if err := u.links.Issue(ctx, user.Email); err != nil {
			u.logger.ErrorContext(ctx, "issue magic link after purchase", "email", user.Email, "error", err)
		}
	}

	metrics.WebhookEventsTotal.WithLabelValues("ok").Inc()
	metrics.ReconciliationsTotal.WithLabelValues("webhook", "recorded").Inc()
	return nil
}

// ConfirmReturn handles the redirect-return path: the buyer's browser
// loaded the view page with a session_id it got from the checkout flow.
// The session is re-fetched from the provider — the query value alone
// proves nothing — and must be paid and minted for the requested
// product. On success the resolved user is returned so the caller can
// establish a browser session. A nil user with nil error means "not
// purchased": access is simply denied, never an error page.
func (u *ReconcileUsecase) ConfirmReturn(ctx context.Context, sessionID, productID string) (*domain.User, error) {
	s, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues("return", "error").Inc()
		return nil, err
	}

	if s.PaymentStatus != "paid" || s.ProductID != productID {
		metrics.ReconciliationsTotal.WithLabelValues("return", "rejected").Inc()
		u.logger.InfoContext(ctx, "redirect return rejected",
			"session_id", sessionID,
			"payment_status", s.PaymentStatus,
			"session_product", s.ProductID,
			"requested_product", productID)
		return nil, nil
	}

	user, _, err := u.record(ctx, domain.Confirmation{
		SessionID: s.ID,
		Email:     s.Email,
		ProductID: s.ProductID,
		Amount:    s.Amount,
	})
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues("return", "error").Inc()
		return nil, err
	}

	metrics.ReconciliationsTotal.WithLabelValues("return", "recorded").Inc()
	return user, nil
}

// record turns a confirmation into at most one purchase row and the
// user who owns it. The bool reports whether this call inserted the
// row or found it already recorded. The sess_id lookup up front is
// only a fast path; correctness comes from the constraint-backed
// upserts underneath.
func (u *ReconcileUsecase) record(ctx context.Context, conf domain.Confirmation) (*domain.User, bool, error) {
	existing, err := u.purchases.FindBySessionID(ctx, conf.SessionID)
	if err == nil {
		user, err := u.users.FindByID(ctx, existing.UserID)
		if err != nil {
			return nil, false, fmt.Errorf("find purchase owner: %w", err)
		}
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrPurchaseNotFound) {
		return nil, false, fmt.Errorf("find purchase: %w", err)
	}

	user, err := u.users.FindOrCreate(ctx, conf.Email)
	if err != nil {
		return nil, false, fmt.Errorf("find or create user: %w", err)
	}

	_, created, err := u.purchases.Create(ctx, user.ID, conf.ProductID, conf.SessionID, conf.Amount)
	if err != nil {
		return nil, false, fmt.Errorf("record purchase: %w", err)
	}
	return user, created, nil
}
