// College Gallery - Photo Gallery Web Application
// Copyright 2026 Md Saif (mdsaifbarauni)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mdsaifbarauni/College-Gallery-Website

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mdsaifbarauni/College-Gallery-Website/internal/auth"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/config"
	"github.com/mdsaifbarauni/College-Gallery-Website/internal/middleware"
)

// Router assembles the HTTP routes for the gallery server.
type Router struct {
	handler    *Handler
	jwtManager *auth.JWTManager
	cfg        *config.Config
}

// NewRouter creates a router for the given handler and configuration.
func NewRouter(handler *Handler, jwtManager *auth.JWTManager, cfg *config.Config) *Router {
	return &Router{
		handler:    handler,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

// Setup builds the chi route tree.
//
// The public surface is GET /api/photos, the static frontend and the
// image files. Login is rate limited per IP against brute force; every
// mutating endpoint requires a Bearer session token.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rt.rateLimit())

		r.With(rt.loginRateLimit()).Post("/login", rt.handler.Login)
		r.Get("/photos", rt.handler.ListPhotos)

		// Admin endpoints behind the session token.
		r.Group(func(r chi.Router) {
			r.Use(rt.jwtManager.RequireToken)

			r.Post("/change-password", rt.handler.ChangePassword)
			r.Post("/upload", rt.handler.UploadPhotos)
			r.Delete("/photos/{id}", rt.handler.DeletePhoto)
			r.Post("/photos/order", rt.handler.ReorderPhotos)
		})
	})

	r.Get("/healthz", rt.handler.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Image binaries and the static frontend.
	imgServer := http.FileServer(http.Dir(rt.cfg.Storage.ImageDir))
	r.Handle("/img/*", http.StripPrefix("/img/", imgServer))
	r.Handle("/*", http.FileServer(http.Dir(rt.cfg.Server.WebRoot)))

	return r
}

// rateLimit throttles the whole API per client IP.
func (rt *Router) rateLimit() func(http.Handler) http.Handler {
	if rt.cfg.Security.RateLimitDisabled {
		return passthrough
	}
	return httprate.Limit(
		rt.cfg.Security.RateLimitRequests,
		rt.cfg.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}

// loginRateLimit throttles /api/login much harder than the rest of the
// API; failed logins are the only brute-forceable surface.
func (rt *Router) loginRateLimit() func(http.Handler) http.Handler {
	if rt.cfg.Security.RateLimitDisabled {
		return passthrough
	}
	return httprate.Limit(
		rt.cfg.Security.LoginRateLimit,
		rt.cfg.Security.LoginRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}

func passthrough(next http.Handler) http.Handler {
	return next
}
