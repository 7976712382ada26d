package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanisrajpoot/youandonly-sub000/internal/auth"
	"github.com/amanisrajpoot/youandonly-sub000/internal/config"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/cartcookie"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/handlers"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/handlers/admin"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/catalog"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/users"
)

// NewRouter wires every handler behind the shared middleware chain. The
// webhook route sits outside the auth groups; its trust comes from the
// gateway signature, not a bearer token.
func NewRouter(cfg config.Config, logger *slog.Logger, db *gorm.DB, provider payments.Provider) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	r.Use(middleware.Authenticate(tokens))

	cartCodec := cartcookie.New([]byte(cfg.Cart.CookieSecret), cfg.Cart.CookieName, cfg.Cart.Secure)

	userSvc := users.NewService(db)
	catalogRepo := catalog.NewRepo(db)
	orderSvc := orders.NewService(db)
	orderRepo := orders.NewRepo(db)
	adminSvc := orders.NewAdminService(db)
	paySvc := payments.NewService(db, provider)
	refundSvc := payments.NewRefundService(db, provider)
	webhookSvc := payments.NewWebhookService(db, logger)

	authH := handlers.NewAuthHandler(userSvc, tokens)
	productsH := handlers.NewProductsHandler(catalogRepo)
	cartH := handlers.NewCartHandler(db, cartCodec)
	ordersH := handlers.NewOrdersHandler(orderSvc, orderRepo)
	paymentsH := handlers.NewPaymentsHandler(paySvc, refundSvc, cfg.Payment.Currency)
	webhookH := handlers.NewWebhookHandler(logger, provider, webhookSvc)
	adminOrdersH := admin.NewOrdersHandler(adminSvc)

	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)

	r.GET("/products", productsH.List)
	r.GET("/products/:id", productsH.Get)

	r.GET("/cart", cartH.Get)
	r.POST("/cart/items", cartH.AddItem)
	r.DELETE("/cart/items/:index", cartH.RemoveItem)
	r.DELETE("/cart", cartH.Clear)

	r.POST("/payments/webhook", webhookH.Handle)

	authed := r.Group("/", middleware.RequireAuth())
	{
		authed.POST("/orders", ordersH.Create)
		authed.GET("/orders", ordersH.List)
		authed.GET("/orders/:id", ordersH.Get)

		authed.POST("/payments/create-payment-intent", paymentsH.CreateIntent)
		authed.GET("/payments/payment-intent/:id", paymentsH.GetIntent)
		authed.POST("/payments/confirm-payment", paymentsH.Confirm)
	}

	r.POST("/payments/refund", middleware.RequireAdmin(), paymentsH.Refund)

	adm := r.Group("/admin", middleware.RequireAdmin())
	{
		adm.PATCH("/orders/:id/status", adminOrdersH.Transition)
	}

	return r
}
