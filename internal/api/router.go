package api

import (
	"itinerary-service/internal/api/handlers"
	"itinerary-service/internal/ports"
	"net/http"
)

// Catalogs is what the API needs from the catalog store: the published
// snapshot for reads and a way to trigger a reload.
type Catalogs interface {
	ports.CatalogProvider
	ports.CatalogReloader
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see ports, never concrete adapters.
// POST /catalog/reload is registered only when adminToken is set and then
// requires it as a bearer token.
func NewRouter(catalogs Catalogs, adminToken string) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Catalogs: catalogs}
	planHandler := &handlers.PlanHandler{Catalogs: catalogs}
	catalogHandler := &handlers.CatalogHandler{Catalogs: catalogs, Reloader: catalogs, AdminToken: adminToken}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/places", catalogHandler.Places)
	if adminToken != "" {
		mux.HandleFunc("/catalog/reload", catalogHandler.Reload)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
