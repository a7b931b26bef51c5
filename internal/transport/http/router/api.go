package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hr-events/internal/core/auth"
	"go-hr-events/internal/core/server"
	"go-hr-events/internal/transport/http/handler"
	mdw "go-hr-events/internal/transport/http/middleware"
)

// NewAPIEngine assembles the public employee API.
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, userH *handler.UserHandler) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")
	api.Use(mdw.ActorFromJWT(jwter))
	userH.Register(api)

	return r
}
