package handlers

import (
	"net/http"

	_ "ir_gateway/docs"
	"ir_gateway/internal/logger"
	"ir_gateway/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options toggles optional parts of the router.
type Options struct {
	// AuthEnabled exposes /auth and puts the control endpoints behind a
	// bearer token.
	AuthEnabled bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.NoRoute(h.notFound)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// Plain-text pages
	router.GET("/", h.statusPage)
	router.GET("/txlog", h.txLog)
	router.GET("/rxlog", h.rxLog)
	router.GET("/protocols", h.protocols)

	control := router.Group("/", h.protect()...)
	{
		control.GET("/tx", h.transmit)
		control.GET("/seq", h.sequence)
	}

	if h.opts.AuthEnabled {
		h.registerAuthRoutes(router)
	}
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

// protect returns the middleware chain for control endpoints.
func (h *Handler) protect() []gin.HandlerFunc {
	if !h.opts.AuthEnabled {
		return nil
	}
	return []gin.HandlerFunc{h.operatorMiddleware}
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.protect()...)
	{
		api.GET("/history", h.getHistory)
		api.GET("/macros", h.listMacros)
	}
}

func (h *Handler) notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "File Not Found\n")
}
