package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/session"
	"github.com/stavrosk/checkout-gate/internal/transport/http/handler"
	"github.com/stavrosk/checkout-gate/internal/transport/http/middleware"
	"github.com/stavrosk/checkout-gate/internal/transport/http/view"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	sessions *session.Manager,
	store *handler.StoreHandler,
	checkout *handler.CheckoutHandler,
	webhook *handler.WebhookHandler,
	auth *handler.AuthHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(sessions))

	r.SetHTMLTemplate(view.Templates())

	r.GET("/", store.Home)
	r.GET("/buy/:pid", checkout.Buy)
	r.GET("/view/:pid", store.View)

	r.POST("/webhook", webhook.Handle)

	r.GET("/request-login", auth.RequestLoginForm)
	r.POST("/request-login", auth.RequestLogin)
	r.GET("/login/:token", auth.Login)
	r.GET("/logout", auth.Logout)

	return r
}
