package router

import (
	"github.com/gin-gonic/gin"

	"saralgst/internal/handler"
	"saralgst/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	issueH *handler.IssueHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Process)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.GET("/:id/document", invoiceH.GetDocumentURL)
	invoices.GET("/:id/issues", issueH.ListByInvoice)
	invoices.PATCH("/:id", invoiceH.Update)
	invoices.POST("/:id/status", invoiceH.UpdateStatus)
	invoices.DELETE("/:id", invoiceH.Delete)

	// Issue review routes
	issues := v1.Group("/issues")
	issues.POST("/:id/review", issueH.Review)

	// Register exports
	exports := v1.Group("/exports")
	exports.GET("/:category", exportH.ExportRegister)

	return r
}
