package handlers

import (
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultPlacesLimit = 20
	maxPlacesLimit     = 100
)

// CatalogHandler exposes catalog browsing and an operator reload endpoint.
type CatalogHandler struct {
	Catalogs ports.CatalogProvider
	Reloader ports.CatalogReloader
	// AdminToken must be presented as a bearer token to reload.
	AdminToken string
}

// Places lists POIs and venues, optionally filtered by category.
func (h *CatalogHandler) Places(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	category := strings.ToLower(strings.TrimSpace(q.Get("category")))
	if strings.EqualFold(category, "all") {
		category = ""
	}

	limit := defaultPlacesLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPlacesLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	cat := h.Catalogs.Current()
	res := dto.ListPlacesResponse{
		POIs:   []dto.POIResponse{},
		Venues: []dto.VenueResponse{},
	}

	for _, p := range cat.AllPOIs() {
		if len(res.POIs) >= limit {
			break
		}
		if category != "" && !p.HasCategory(category) {
			continue
		}
		res.POIs = append(res.POIs, toPOIResponse(p))
	}

	for _, v := range cat.AllVenues() {
		if len(res.Venues) >= limit {
			break
		}
		if category != "" && !strings.EqualFold(v.Category, category) {
			continue
		}
		res.Venues = append(res.Venues, toVenueResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Reload rebuilds the catalog from its source and reports the new size.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if !bearerMatches(r, h.AdminToken) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Reloader.Reload(r.Context()); err != nil {
		log.Printf("catalog reload failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "catalog reload failed")
		return
	}

	cat := h.Catalogs.Current()
	writeJSON(w, r, http.StatusOK, dto.CatalogStatsResponse{
		Status: "reloaded",
		POIs:   len(cat.AllPOIs()),
		Venues: len(cat.AllVenues()),
	})
}

func toPOIResponse(p domain.POI) dto.POIResponse {
	return dto.POIResponse{
		ID:            p.ID,
		Name:          p.Name,
		Categories:    nonNil(p.Categories),
		Tags:          nonNil(p.Tags),
		Description:   p.Description,
		CostUSD:       p.CostUSD,
		DurationHours: p.DurationHours,
		BestTime:      string(p.BestTime),
		Rating:        p.Rating,
		District:      p.District,
		Coordinates:   toCoordinatesResponse(p.Location),
	}
}

func toVenueResponse(v domain.Venue) dto.VenueResponse {
	return dto.VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Category:    v.Category,
		AvgCheckUSD: v.AvgCheckUSD,
		OpensAt:     v.OpensAt.String(),
		ClosesAt:    v.ClosesAt.String(),
		Rating:      v.Rating,
		Coordinates: toCoordinatesResponse(v.Location),
	}
}

func toCoordinatesResponse(c *domain.Coordinates) *dto.CoordinatesResponse {
	if c == nil {
		return nil
	}
	return &dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
