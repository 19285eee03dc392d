package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finplan/internal/http/export"
	"github.com/MrJamesThe3rd/finplan/internal/http/lender"
	"github.com/MrJamesThe3rd/finplan/internal/http/offer"
	"github.com/MrJamesThe3rd/finplan/internal/http/plan"
)

type Options struct {
	AllowedOrigins []string
	// Authenticate resolves the plan owner. Every /api/v1 route goes through it.
	Authenticate func(http.Handler) http.Handler
}

func New(
	opts Options,
	plansV1 *plan.Handler,
	offersV1 *offer.Handler,
	lendersV1 *lender.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Authenticate != nil {
			r.Use(opts.Authenticate)
		}

		r.Route("/plans", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			plansV1.Routes(r)
			exportV1.Routes(r)
		})

		r.Route("/offers", offersV1.Routes)

		r.Route("/lenders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			lendersV1.Routes(r)
		})
	})

	return router
}
