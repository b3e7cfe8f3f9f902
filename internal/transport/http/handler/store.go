package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/session"
	"github.com/stavrosk/checkout-gate/internal/transport/http/middleware"
	"github.com/stavrosk/checkout-gate/internal/transport/http/view"
)

// accessUsecaser is the subset of AccessUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type accessUsecaser interface {
	CanAccess(ctx context.Context, userID, productID string) (bool, error)
	OwnedProducts(ctx context.Context, userID string) ([]string, error)
}

// returnReconciler is the redirect-return half of the reconciler.
type returnReconciler interface {
	ConfirmReturn(ctx context.Context, sessionID, productID string) (*domain.User, error)
}

type StoreHandler struct {
	access     accessUsecaser
	reconciler returnReconciler
	sessions   *session.Manager
	logger     *slog.Logger
}

func NewStoreHandler(access accessUsecaser, reconciler returnReconciler, sessions *session.Manager, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		access:     access,
		reconciler: reconciler,
		sessions:   sessions,
		logger:     logger.With("component", "store_handler"),
	}
}

// GET /
func (h *StoreHandler) Home(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	owned, err := h.access.OwnedProducts(c.Request.Context(), userID)
	if err != nil {
		// The storefront still renders; the visitor just sees Buy buttons.
		h.logger.ErrorContext(c.Request.Context(), "list owned products", "error", err)
	}
	ownedSet := make(map[string]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}

	cards := make([]view.ProductCard, 0, len(domain.Catalog))
	for _, p := range domain.Catalog {
		cards = append(cards, view.ProductCard{Product: p, Owned: ownedSet[p.ID]})
	}

	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Products": cards,
		"LoggedIn": userID != "",
	})
}

// GET /view/:pid?session_id=
// Renders the premium page for owners. An anonymous visitor arriving
// with a session_id is the redirect-return confirmation path: the
// session is verified against the gateway and, if it checks out, the
// purchase is recorded and the browser signed in on the spot. Every
// failure mode ends in a redirect to the storefront, never an error page.
func (h *StoreHandler) View(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("pid")
	userID := c.GetString(middleware.UserIDKey)

	if userID == "" {
		if sessionID := c.Query("session_id"); sessionID != "" {
			user, err := h.reconciler.ConfirmReturn(ctx, sessionID, productID)
			if err != nil {
				h.logger.ErrorContext(ctx, "redirect return reconciliation", "session_id", sessionID, "error", err)
			}
			if user != nil {
				if err := setSessionCookie(c, h.sessions, user.ID); err != nil {
					h.logger.ErrorContext(ctx, "establish session", "error", err)
				} else {
					userID = user.ID
				}
			}
		}
	}

	ok, err := h.access.CanAccess(ctx, userID, productID)
	if err != nil {
		h.logger.ErrorContext(ctx, "access check", "error", err)
	}
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	p, found := domain.ProductByID(productID)
	if !found {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "premium.tmpl", gin.H{"Product": p})
}

func setSessionCookie(c *gin.Context, sessions *session.Manager, userID string) error {
	token, err := sessions.Issue(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, sessions.MaxAge(), "/", "", false, true)
	return nil
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}
