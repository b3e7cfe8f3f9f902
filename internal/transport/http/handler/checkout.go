package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/metrics"
	"github.com/stavrosk/checkout-gate/internal/payment"
	"github.com/stavrosk/checkout-gate/internal/repository"
	"github.com/stavrosk/checkout-gate/internal/transport/http/middleware"
)

type CheckoutHandler struct {
	gateway  payment.Gateway
	users    repository.UserRepository
	baseURL  string
	currency string
	logger   *slog.Logger
}

func NewCheckoutHandler(gateway payment.Gateway, users repository.UserRepository, baseURL, currency string, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		gateway:  gateway,
		users:    users,
		baseURL:  baseURL,
		currency: currency,
		logger:   logger.With("component", "checkout_handler"),
	}
}

// GET /buy/:pid
// Creates a hosted checkout session and redirects the browser to it.
// The product id lands in the session metadata so both confirmation
// paths can tell which product was bought. A signed-in buyer's email
// prefills the checkout form.
func (h *CheckoutHandler) Buy(c *gin.Context) {
	ctx := c.Request.Context()
	p := domain.MustProduct(c.Param("pid"))

	customerEmail := ""
	if userID := c.GetString(middleware.UserIDKey); userID != "" {
		user, err := h.users.FindByID(ctx, userID)
		switch {
		case err == nil:
			customerEmail = user.Email
		case errors.Is(err, domain.ErrUserNotFound):
			// Stale cookie; checkout proceeds anonymously.
		default:
			h.logger.ErrorContext(ctx, "find user for checkout", "error", err)
		}
	}

	checkoutURL, err := h.gateway.CreateCheckout(ctx, payment.CheckoutInput{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Currency:    h.currency,
		// The provider substitutes the session id into the placeholder
		// when it redirects the buyer back.
		SuccessURL:    h.baseURL + "/view/" + p.ID + "?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     h.baseURL + "/",
		CustomerEmail: customerEmail,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create checkout session", "product", p.ID, "error", err)
		c.String(http.StatusBadGateway, "Checkout is unavailable right now. Please try again.")
		return
	}

	metrics.CheckoutSessionsCreatedTotal.WithLabelValues(p.ID).Inc()
	c.Redirect(http.StatusFound, checkoutURL)
}
