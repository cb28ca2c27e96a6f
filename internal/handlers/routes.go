package handlers

import (
	"net/http"

	"github.com/Varun5711/taskflow/internal/logger"
	"github.com/Varun5711/taskflow/internal/middleware"
)

type Router struct {
	Auth        *AuthHandler
	Health      *HealthHandler
	Docs        *SwaggerHandler
	RequireAuth *middleware.AuthMiddleware
	// RateLimiter is optional; nil disables limiting.
	RateLimiter *middleware.RateLimiter
	// Proxies decides whose forwarding headers are believed; nil trusts none.
	Proxies *middleware.ProxyTrust
	Log     *logger.Logger
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	limit := func(h http.HandlerFunc) http.Handler {
		if rt.RateLimiter == nil {
			return h
		}
		return rt.RateLimiter.Middleware(h)
	}

	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.Handle("POST /api/auth/register", limit(rt.Auth.Register))
	mux.Handle("POST /api/auth/login", limit(rt.Auth.Login))
	mux.Handle("GET /api/auth/me", limit(rt.RequireAuth.RequireAuth(rt.Auth.Me)))

	if rt.Docs != nil {
		rt.Docs.RegisterRoutes(mux)
	}

	return rt.Proxies.Middleware(middleware.RequestLogger(rt.Log)(mux))
}
