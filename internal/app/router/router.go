package router

import (
	"time"

	"media_backend/internal/api"
	authhandler "media_backend/internal/feature/auth/transport/handler"
	"media_backend/internal/platform/http/handler"
	jwtmw "media_backend/internal/platform/jwt"
	"media_backend/internal/platform/ratelimit"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, mwCfg jwtmw.MiddlewareConfig) *gin.Engine {
	r := gin.Default()
	r.Use(api.ErrorRenderer())

	// public routes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// credential endpoints are throttled per client IP
	limiter := ratelimit.NewLimiter(10, time.Minute)
	r.POST("/signup", limiter.Middleware(), api.Wrap(authHandler.Signup))
	r.POST("/login", limiter.Middleware(), api.Wrap(authHandler.Login))
	r.POST("/refresh", api.Wrap(authHandler.Refresh))

	// routes behind bearer-token verification
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(mwCfg))
	{
		auth.POST("/signout", api.Wrap(authHandler.Signout))
	}

	return r
}
