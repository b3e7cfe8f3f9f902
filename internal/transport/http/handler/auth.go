package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/domain"
	"github.com/stavrosk/checkout-gate/internal/session"
)

const (
	msgLinkSent    = "Link sent! Check your email (or console)."
	msgLinkInvalid = "Link invalid or expired."
)

// magicLinker is the subset of MagicLinkUsecase the handler needs.
type magicLinker interface {
	Request(ctx context.Context, email string) error
	Redeem(ctx context.Context, rawToken string) (*domain.User, error)
}

type AuthHandler struct {
	links    magicLinker
	sessions *session.Manager
	logger   *slog.Logger
}

func NewAuthHandler(links magicLinker, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		links:    links,
		sessions: sessions,
		logger:   logger.With("component", "auth_handler"),
	}
}

// GET /request-login
func (h *AuthHandler) RequestLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", nil)
}

// POST /request-login
// Always renders "link sent" whether or not the email has an account,
// so the endpoint cannot be used to probe registered addresses.
func (h *AuthHandler) RequestLogin(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.HTML(http.StatusOK, "login.tmpl", nil)
		return
	}

	if err := h.links.Request(c.Request.Context(), email); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "request magic link", "error", err)
	}

	c.HTML(http.StatusOK, "message.tmpl", gin.H{
		"Class": "alert-info",
		"Text":  msgLinkSent,
	})
}

// GET /login/:token
// Redeems a magic link and signs the browser in. Expired, used, and
// unknown tokens are expected outcomes and render a plain notice.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.links.Redeem(ctx, c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) ||
			errors.Is(err, domain.ErrLinkUsed) ||
			errors.Is(err, domain.ErrLinkExpired) {
			c.HTML(http.StatusOK, "message.tmpl", gin.H{
				"Class": "alert-error",
				"Text":  msgLinkInvalid,
			})
			return
		}
		h.logger.ErrorContext(ctx, "redeem magic link", "error", err)
		c.HTML(http.StatusInternalServerError, "message.tmpl", gin.H{
			"Class": "alert-error",
			"Text":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := setSessionCookie(c, h.sessions, user.ID); err != nil {
		h.logger.ErrorContext(ctx, "establish session", "error", err)
		c.HTML(http.StatusInternalServerError, "message.tmpl", gin.H{
			"Class": "alert-error",
			"Text":  "Something went wrong. Please try again.",
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
