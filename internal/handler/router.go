package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"examgate/internal/handler/api"
	"examgate/internal/handler/middleware"
	"examgate/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	slotHandler *api.SlotHandler,
	purchaseHandler *api.PurchaseHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, slotHandler, purchaseHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.NewRateLimiter(cfg.Rate).Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	slotHandler *api.SlotHandler,
	purchaseHandler *api.PurchaseHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		slots := apiGroup.Group("/slots")
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: slotHandler.ListOpenSlots},
				{Method: http.MethodGet, Path: "/:id", Handler: slotHandler.GetSlot},
			})

			admin := slots.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "", Handler: slotHandler.CreateSlot},
				{Method: http.MethodPut, Path: "/:id", Handler: slotHandler.UpdateSlot},
				{Method: http.MethodPost, Path: "/:id/close", Handler: slotHandler.CloseSlot},
				{Method: http.MethodDelete, Path: "/:id", Handler: slotHandler.DeleteSlot},
			})
		}

		purchases := apiGroup.Group("/purchases")
		{
			authRequired := purchases.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: purchaseHandler.OpenPurchase},
				{Method: http.MethodGet, Path: "", Handler: purchaseHandler.ListMyPurchases},
				{Method: http.MethodGet, Path: "/:id", Handler: purchaseHandler.GetPurchase},
			})

			admin := purchases.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: purchaseHandler.CancelPurchase},
			})
		}

		// Payment authority callback; authenticated by network boundary,
		// not JWT.
		apiGroup.POST("/payments/webhook", purchaseHandler.PaymentWebhook)

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/redeem", Handler: bookingHandler.RedeemVoucher},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
