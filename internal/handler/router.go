package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"promo-service/internal/handler/api"
	"promo-service/internal/handler/middleware"
	"promo-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, promotionHandler *api.PromotionHandler, invoiceHandler *api.InvoiceHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, promotionHandler, invoiceHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, promotionHandler *api.PromotionHandler, invoiceHandler *api.InvoiceHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		promotions := apiGroup.Group("/promotions")
		{
			addRoutes(promotions, []route{
				{Method: http.MethodPost, Path: "", Handler: promotionHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: promotionHandler.List},
				{Method: http.MethodPost, Path: "/validate", Handler: promotionHandler.Validate},
				{Method: http.MethodGet, Path: "/by-code/:code", Handler: promotionHandler.GetByCode},
				{Method: http.MethodGet, Path: "/:id", Handler: promotionHandler.GetByID},
				{Method: http.MethodPut, Path: "/:id", Handler: promotionHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: promotionHandler.Delete},
				{Method: http.MethodGet, Path: "/:id/usages", Handler: promotionHandler.ListUsages},
			})
		}

		invoices := apiGroup.Group("/invoices")
		{
			addRoutes(invoices, []route{
				{Method: http.MethodPost, Path: "", Handler: invoiceHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: invoiceHandler.GetByID},
				{Method: http.MethodPost, Path: "/:id/apply-promotion", Handler: invoiceHandler.ApplyPromotion},
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
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
