// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/author-service/internal/handler"
	"github.com/iliyamo/author-service/internal/middleware"
)

// RegisterRoutes registers the probes and the metrics endpoint. None of them
// require authentication.
func RegisterRoutes(e *echo.Echo, db *sqlx.DB, gatherer prometheus.Gatherer) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterAuthors registers the author API under /v1. Registration, login,
// activation and lookups are public; profile changes need a bearer token for
// the same author. cache wraps the /v1/authors routes only: reads are served
// from it and successful writes there purge it. It may be nil.
func RegisterAuthors(e *echo.Echo, h *handler.AuthorHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	// per route, so unknown /v1 paths still 404 instead of 401
	jwt := middleware.JWTAuth(jwtSecret)
	self := middleware.RequireSelf("id")

	v1 := e.Group("/v1")
	v1.POST("/auth/login", h.Login)
	v1.GET("/me", h.Me, jwt)

	v1.POST("/authors", h.Register, cache)
	v1.GET("/authors", h.List, cache)
	v1.POST("/authors/activate/:token", h.Activate, cache)
	v1.GET("/authors/by-username/:username", h.GetByUsername, cache)
	v1.GET("/authors/:id", h.Get, cache)
	v1.PATCH("/authors/:id", h.Update, jwt, self, cache)
	v1.DELETE("/authors/:id", h.Delete, jwt, self, cache)
}
