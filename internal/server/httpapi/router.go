package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scanfact/scanfact/internal/server/auth"
)

// NewRouter wires the REST surface. Everything except /auth/login and
// /health requires a bearer token.
func NewRouter(s *Services, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/login", s.login)

	authed := router.Group("/")
	authed.Use(authMiddleware(func(c *gin.Context, token string) (*auth.Identity, error) {
		return s.Auth.Verify(c.Request.Context(), token)
	}))

	clients := authed.Group("/clients")
	{
		clients.GET("", s.listClients)
		clients.POST("", s.createClient)
		clients.PUT("/:id", s.updateClient)
		clients.PATCH("/:id/assign", s.assignClient)
		clients.DELETE("/:id", s.deleteClient)
	}

	folders := authed.Group("/folders")
	{
		folders.GET("", s.listFolders)
		folders.POST("", s.createFolder)
		folders.PUT("/:id", s.updateFolder)
		folders.PATCH("/:id/favorite", s.favoriteFolder)
		folders.PATCH("/:id/archive", s.archiveFolder)
		folders.DELETE("/:id", s.deleteFolder)
	}

	invoices := authed.Group("/invoices")
	{
		invoices.GET("", s.listInvoices)
		invoices.POST("", s.createInvoice)
		invoices.PUT("/:id", s.updateInvoice)
		invoices.PATCH("/:id/validate", s.validateInvoice)
		invoices.PATCH("/:id/cancel", s.cancelInvoice)
		invoices.POST("/:id/extract", s.extractInvoice)
		invoices.DELETE("/:id", s.deleteInvoice)
	}

	users := authed.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.PUT("/:id", s.updateUser)
		users.PATCH("/:id/activation", s.activateUser)
		users.DELETE("/:id", s.deleteUser)
	}

	return router
}
