package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 1 << 20 // 1 MiB

type webhookReconciler interface {
	ConfirmWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type WebhookHandler struct {
	reconciler webhookReconciler
	logger     *slog.Logger
}

func NewWebhookHandler(reconciler webhookReconciler, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		logger:     logger.With("component", "webhook_handler"),
	}
}

// POST /webhook
// The signature check inside ConfirmWebhook is the only authentication
// on this endpoint. Any failure answers 400 so the provider redelivers;
// processing is idempotent, so redelivery of an already-handled event
// is a cheap 200.
func (h *WebhookHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.ErrorContext(ctx, "read webhook body", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.reconciler.ConfirmWebhook(ctx, payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.logger.ErrorContext(ctx, "process webhook", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}
