package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/server/handlers"
	"github.com/mamadbah2/loombook/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Role())
	api.GET("/dashboard", handler.Dashboard)
	api.GET("/alerts", handler.Alerts)

	admin := middleware.Require(models.Role.CanAdminister)
	finance := middleware.Require(models.Role.CanViewFinance)
	production := middleware.Require(models.Role.CanViewProduction)

	weavers := api.Group("/weavers")
	weavers.GET("", handler.ListWeavers)
	weavers.POST("", admin, handler.CreateWeaver)
	weavers.POST("/copy-allocations", admin, handler.CopyAllocations)
	weavers.PUT("/:id", admin, handler.UpdateWeaver)
	weavers.DELETE("/:id", admin, handler.DeleteWeaver)

	designs := api.Group("/designs")
	designs.GET("", handler.ListDesigns)
	designs.POST("", admin, handler.CreateDesign)
	designs.PUT("/:id", admin, handler.UpdateDesign)
	designs.DELETE("/:id", admin, handler.DeleteDesign)

	prod := api.Group("/production", production)
	prod.GET("", handler.ListProduction)
	prod.POST("", handler.CreateProduction)
	prod.PUT("/:id", handler.UpdateProduction)
	prod.DELETE("/:id", handler.DeleteProduction)

	loans := api.Group("/loans", finance)
	loans.GET("", handler.ListLoans)
	loans.POST("", handler.CreateLoan)
	loans.PUT("/:id", handler.UpdateLoan)
	loans.DELETE("/:id", handler.DeleteLoan)

	repayments := api.Group("/repayments", finance)
	repayments.GET("", handler.ListRepayments)
	repayments.POST("", handler.CreateRepayment)
	repayments.PUT("/:id", handler.UpdateRepayment)
	repayments.DELETE("/:id", handler.DeleteRepayment)

	rentals := api.Group("/rental-payments", finance)
	rentals.GET("", handler.ListRentalPayments)
	rentals.POST("", handler.CreateRentalPayment)
	rentals.PUT("/:id", handler.UpdateRentalPayment)
	rentals.DELETE("/:id", handler.DeleteRentalPayment)

	// Per-type role checks happen in the handler.
	api.GET("/reports", handler.ReportTypes)
	api.GET("/reports/:type", handler.Report)
	api.POST("/reports/:type/sheets", handler.ExportReport)

	api.GET("/history", admin, handler.History)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
