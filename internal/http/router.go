package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rechesh-io/rechesh/internal/http/attachment"
	"github.com/rechesh-io/rechesh/internal/http/auth"
	"github.com/rechesh-io/rechesh/internal/http/export"
	"github.com/rechesh-io/rechesh/internal/http/hierarchy"
	"github.com/rechesh-io/rechesh/internal/http/importcsv"
	"github.com/rechesh-io/rechesh/internal/http/metrics"
	"github.com/rechesh-io/rechesh/internal/http/purchase"
	"github.com/rechesh-io/rechesh/internal/http/purpose"
	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/http/supplier"
)

// Pinger reports whether the backing store is reachable. *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func New(
	authenticator *auth.Authenticator,
	db Pinger,
	allowedOrigins []string,
	purposesV1 *purpose.Handler,
	purchasesV1 *purchase.Handler,
	hierarchiesV1 *hierarchy.Handler,
	filesV1 *attachment.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
	suppliersV1 *supplier.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(metrics.Middleware)

	router.Get("/healthz", healthz(db))
	router.Handle("/metrics", metrics.Handler())

	admin := authenticator.RequireRole("admin")

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticator.Middleware)

		r.Route("/purposes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))
			exportV1.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				importV1.Routes(r)
			})
			purposesV1.Routes(r, admin)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.PurchaseRoutes(r, admin)
		})

		r.Route("/stages", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.StageRoutes(r, admin)
		})

		r.Route("/hierarchies", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			hierarchiesV1.Routes(r, admin)
		})

		r.Route("/files", func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			filesV1.Routes(r, admin)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			suppliersV1.Routes(r, admin)
		})
	})

	return router
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
