package handlers

import (
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/ports"
	"net/http"
)

// HealthHandler reports liveness along with the size of the published catalog.
type HealthHandler struct {
	Catalogs ports.CatalogProvider
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	cat := h.Catalogs.Current()
	writeJSON(w, r, http.StatusOK, dto.CatalogStatsResponse{
		Status: "ok",
		POIs:   len(cat.AllPOIs()),
		Venues: len(cat.AllVenues()),
	})
}
