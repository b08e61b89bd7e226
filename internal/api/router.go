// Package api assembles the HTTP surface of the service.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"commerce-api/internal/auth"
	"commerce-api/internal/catalog"
	"commerce-api/internal/featureflags"
	mw "commerce-api/internal/http/middleware"
	"commerce-api/internal/http/response"
	"commerce-api/internal/orders"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Catalog        *catalog.Service
	Orders         *orders.Service
	Verifier       auth.Verifier
	Ready          func(context.Context) error
	Offline        func() bool
	Registry       *prometheus.Registry
	AllowedOrigins []string
}

// NewRouter builds the routed handler with the full middleware chain.
func NewRouter(d Deps) http.Handler {
	if d.Offline == nil {
		d.Offline = func() bool { return false }
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})

	metrics := mw.NewMetrics(d.Registry)
	r.Use(mw.RequestID)
	r.Use(mw.OfflineGate(d.Offline, "/health", "/ready"))
	r.Use(mw.LogRequests(mw.WithSkips("/health", "/ready", "/metrics")))
	r.Use(metrics.Middleware)
	r.Use(auth.Authenticate(d.Verifier))

	// health
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, req *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(req.Context()); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/_flags", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"offline":  d.Offline(),
			"logLevel": featureflags.LogLevel(),
		})
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// catalog, public reads
	catalogHandler := catalog.NewHandler(d.Catalog)
	r.HandleFunc("/products", catalogHandler.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", catalogHandler.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/categories", catalogHandler.ListCategories).Methods(http.MethodGet)

	// admin writes
	r.HandleFunc("/products", auth.RequireAdmin(catalogHandler.CreateProduct)).Methods(http.MethodPost)

	// orders, authenticated
	ordersHandler := orders.NewHandler(d.Orders)
	r.HandleFunc("/orders/{id}", auth.RequireAuth(ordersHandler.GetOrder)).Methods(http.MethodGet)

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders:   []string{"Location", mw.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)
}
