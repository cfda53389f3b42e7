package dto

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type POIResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Categories    []string             `json:"categories"`
	Tags          []string             `json:"tags"`
	Description   string               `json:"description"`
	CostUSD       float64              `json:"cost_usd"`
	DurationHours float64              `json:"duration_hours"`
	BestTime      string               `json:"best_time"`
	Rating        float64              `json:"rating"`
	District      string               `json:"district,omitempty"`
	Coordinates   *CoordinatesResponse `json:"coordinates,omitempty"`
}

type VenueResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	AvgCheckUSD float64              `json:"avg_check_usd"`
	OpensAt     string               `json:"opens_at"`
	ClosesAt    string               `json:"closes_at"`
	Rating      float64              `json:"rating"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

type ListPlacesResponse struct {
	POIs   []POIResponse   `json:"pois"`
	Venues []VenueResponse `json:"venues"`
}

type CatalogStatsResponse struct {
	Status string `json:"status"`
	POIs   int    `json:"pois"`
	Venues int    `json:"venues"`
}
