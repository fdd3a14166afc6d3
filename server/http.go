package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/metrics"
)

func newAdminMux() *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Handle("/metrics", metrics.Handler())

	return router
}

func serveHTTP(addr string, mux *chi.Mux) {
	if err := http.ListenAndServe(addr, mux); err != nil { //nolint:gosec
		log.Log().WithError(err).Error("http admin server stopped")
	}
}
