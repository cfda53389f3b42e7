package handlers

import (
	"errors"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"log"
	"net/http"
	"time"
)

const (
	defaultDays      = 3
	defaultBudgetUSD = 100.0
)

var defaultInterests = []string{"history", "food"}

type PlanHandler struct {
	Catalogs ports.CatalogProvider
	// Now overrides the clock used for the start date fallback.
	Now func() time.Time
}

// Plan builds an itinerary against the currently published catalog.
// Omitted request fields take the documented defaults.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	svcReq := services.CreatePlanRequest{
		Days:      defaultDays,
		Interests: defaultInterests,
		BudgetUSD: defaultBudgetUSD,
		Pace:      req.Pace,
		StartDate: req.StartDate,
		Now:       time.Now(),
	}
	if req.Days != nil {
		svcReq.Days = *req.Days
	}
	if len(req.Interests) > 0 {
		svcReq.Interests = req.Interests
	}
	if req.Budget != nil {
		svcReq.BudgetUSD = *req.Budget
	}
	if h.Now != nil {
		svcReq.Now = h.Now()
	}

	plan, err := services.CreatePlan(r.Context(), svcReq, h.Catalogs.Current())
	if err != nil {
		for _, invalid := range []error{services.ErrInvalidDays, services.ErrInvalidBudget, services.ErrInvalidPace} {
			if errors.Is(err, invalid) {
				writeError(w, r, http.StatusBadRequest, invalid.Error())
				return
			}
		}
		log.Printf("create plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func toPlanResponse(p *domain.Plan) dto.PlanResponse {
	res := dto.PlanResponse{
		Days:         make([]dto.DayPlanResponse, 0, len(p.Days)),
		Warnings:     p.Warnings,
		TotalCostUSD: p.TotalCostUSD,
		Pace:         string(p.Pace),
		POICount:     p.POICount,
		MealCount:    p.MealCount,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	for _, d := range p.Days {
		blocks := make([]dto.PlanBlockResponse, 0, len(d.Blocks))
		for _, b := range d.Blocks {
			blocks = append(blocks, dto.PlanBlockResponse{
				Start:   b.Start.String(),
				End:     b.End.String(),
				Type:    string(b.Kind),
				POIID:   optional(b.POIID),
				VenueID: optional(b.VenueID),
				Name:    b.Name,
				Reason:  b.Reason,
				CostUSD: b.CostUSD,
			})
		}

		res.Days = append(res.Days, dto.DayPlanResponse{
			DayNumber: d.DayNumber,
			Date:      d.Date.Format("2006-01-02"),
			Theme:     d.Theme,
			Blocks:    blocks,
		})
	}

	return res
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
