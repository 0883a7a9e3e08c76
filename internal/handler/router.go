package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotbook/internal/handler/api"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/metrics"
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
	m *metrics.Metrics,
	productHandler *api.ProductHandler,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, productHandler, slotHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	productHandler *api.ProductHandler,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	requireAdmin := authMiddleware.RequireAdmin()
	optionalAuth := authMiddleware.OptionalAuth()

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: productHandler.List, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodGet, Path: "/:id", Handler: productHandler.Get},
				{Method: http.MethodGet, Path: "/:id/room-types", Handler: productHandler.ListRoomTypes, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: slotHandler.List, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "", Handler: productHandler.Create, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
				{Method: http.MethodPut, Path: "/:id", Handler: productHandler.Update, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
				{Method: http.MethodDelete, Path: "/:id", Handler: productHandler.Delete, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/room-types", Handler: productHandler.CreateRoomType, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/slots/generate", Handler: slotHandler.Generate, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
			})
		}

		roomTypes := apiGroup.Group("/room-types")
		roomTypes.Use(requireAuth, requireAdmin)
		{
			addRoutes(roomTypes, []route{
				{Method: http.MethodPut, Path: "/:id", Handler: productHandler.UpdateRoomType},
				{Method: http.MethodDelete, Path: "/:id", Handler: productHandler.DeleteRoomType},
			})
		}

		slots := apiGroup.Group("/slots")
		slots.Use(requireAuth, requireAdmin)
		{
			addRoutes(slots, []route{
				{Method: http.MethodPatch, Path: "/:id/status", Handler: slotHandler.SetStatus},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodPost, Path: "/group", Handler: bookingHandler.CreateGroup},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.Confirm, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		my := apiGroup.Group("/my")
		my.Use(requireAuth)
		{
			addRoutes(my, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: bookingHandler.ListMine},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
