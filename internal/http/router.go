package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intconfig "invoice-engine/internal/config"
	h "invoice-engine/internal/http/handlers"
	"invoice-engine/internal/http/middleware"
)

// Deps are the long-lived handler dependencies assembled in main.
type Deps struct {
	Invoices h.InvoiceHandler
	Auth     h.AuthHandler
}

// invoiceRoles may read and send invoices.
var invoiceRoles = []string{"owner", "admin", "staff"}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", deps.Auth.Login)

		invoices := api.Group("/invoices", middleware.JWTAuth(deps.Auth.Secret), middleware.RequireRoles(invoiceRoles...))
		invoices.GET("/:id/document", deps.Invoices.GetDocument)
		invoices.GET("/:id/pdf", deps.Invoices.GetPDF)
		invoices.POST("/:id/email",
			middleware.RateLimit(middleware.PerMinute(env.Mail.RatePerMinute)),
			deps.Invoices.SendEmail,
		)
	}

	h.SetRouter(r)
	return r
}
