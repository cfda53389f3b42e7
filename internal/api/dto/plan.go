package dto

type PlanRequest struct {
	Days      *int     `json:"days" validate:"omitempty,min=1,max=14"`
	Interests []string `json:"interests" validate:"omitempty,max=20,dive,required,max=40"`
	Budget    *float64 `json:"budget" validate:"omitempty,gt=0"`
	Pace      string   `json:"pace" validate:"omitempty,oneof=slow medium fast"`
	StartDate string   `json:"start_date"`
}

type PlanBlockResponse struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Type    string  `json:"type"`
	POIID   *string `json:"poi_id"`
	VenueID *string `json:"venue_id"`
	Name    string  `json:"name"`
	Reason  string  `json:"reason"`
	CostUSD float64 `json:"cost_usd"`
}

type DayPlanResponse struct {
	DayNumber int                 `json:"day_number"`
	Date      string              `json:"date"`
	Theme     string              `json:"theme"`
	Blocks    []PlanBlockResponse `json:"blocks"`
}

type PlanResponse struct {
	Days         []DayPlanResponse `json:"days"`
	Warnings     []string          `json:"warnings"`
	TotalCostUSD float64           `json:"total_cost_usd"`
	Pace         string            `json:"pace"`
	POICount     int               `json:"poi_count"`
	MealCount    int               `json:"meal_count"`
}
