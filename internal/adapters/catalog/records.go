package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultDurationHours = 1.0
	defaultRating        = 4.0
)

type coordinatesRecord struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

type poiRecord struct {
	ID            string             `json:"id" yaml:"id" validate:"required"`
	Name          string             `json:"name" yaml:"name" validate:"required"`
	NameEN        string             `json:"name_en" yaml:"name_en"`
	Category      []string           `json:"category" yaml:"category"`
	Description   string             `json:"description" yaml:"description"`
	CostUSD       *float64           `json:"cost_usd" yaml:"cost_usd" validate:"omitempty,gte=0"`
	DurationHours *float64           `json:"duration_hours" yaml:"duration_hours" validate:"omitempty,gt=0,lte=24"`
	BestTime      string             `json:"best_time" yaml:"best_time"`
	Tags          []string           `json:"tags" yaml:"tags"`
	AvgRating     *float64           `json:"avg_rating" yaml:"avg_rating" validate:"omitempty,gte=0,lte=5"`
	Rating        *float64           `json:"rating" yaml:"rating" validate:"omitempty,gte=0,lte=5"`
	District      string             `json:"district" yaml:"district"`
	Coordinates   *coordinatesRecord `json:"coordinates" yaml:"coordinates"`
}

type venueRecord struct {
	ID           string             `json:"id" yaml:"id" validate:"required"`
	Name         string             `json:"name" yaml:"name" validate:"required"`
	Category     string             `json:"category" yaml:"category"`
	AvgCheckUSD  *float64           `json:"avg_check_usd" yaml:"avg_check_usd" validate:"required,gte=0"`
	Rating       *float64           `json:"rating" yaml:"rating" validate:"omitempty,gte=0,lte=5"`
	OpensAt      string             `json:"opens_at" yaml:"opens_at" validate:"omitempty,clock"`
	ClosingHours string             `json:"closing_hours" yaml:"closing_hours" validate:"omitempty,clock"`
	OpeningHours string             `json:"opening_hours" yaml:"opening_hours"`
	Coordinates  *coordinatesRecord `json:"coordinates" yaml:"coordinates"`
}

type poiDocument struct {
	POI []poiRecord `json:"poi" yaml:"poi"`
}

type venueDocument struct {
	Restaurants []venueRecord `json:"restaurants" yaml:"restaurants"`
}

type docFormat int

const (
	formatJSON docFormat = iota
	formatYAML
)

// formatFor picks the document format from a file name or URL path.
func formatFor(name string) docFormat {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// rawDocument is a fetched catalog document. A non-nil err means it could not be read.
type rawDocument struct {
	name   string
	data   []byte
	format docFormat
	err    error
}

var (
	validate         = newValidator()
	hoursRangeRegexp = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[-–]\s*(\d{1,2}:\d{2})`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// assemble decodes both documents into catalog data. A document that is
// missing or malformed contributes an issue and no records.
func assemble(poiDoc, venueDoc rawDocument) ports.CatalogData {
	var data ports.CatalogData

	pois, issues, err := decodePOIs(poiDoc)
	if err != nil {
		data.Issues = append(data.Issues, fmt.Sprintf("poi document %s: %v", poiDoc.name, err))
	}
	data.POIs = pois
	data.Issues = append(data.Issues, issues...)

	venues, issues, err := decodeVenues(venueDoc)
	if err != nil {
		data.Issues = append(data.Issues, fmt.Sprintf("venue document %s: %v", venueDoc.name, err))
	}
	data.Venues = venues
	data.Issues = append(data.Issues, issues...)

	return data
}

func decodePOIs(doc rawDocument) ([]domain.POI, []string, error) {
	var parsed poiDocument
	if err := unmarshal(doc, &parsed); err != nil {
		return []domain.POI{}, nil, err
	}

	pois := make([]domain.POI, 0, len(parsed.POI))
	var issues []string
	for i, rec := range parsed.POI {
		if err := validate.Struct(rec); err != nil {
			issues = append(issues, fmt.Sprintf("poi[%d] id=%q skipped: %s", i, rec.ID, describe(err)))
			continue
		}
		p, notes := rec.toDomain()
		for _, n := range notes {
			issues = append(issues, fmt.Sprintf("poi %q: %s", p.ID, n))
		}
		pois = append(pois, p)
	}

	return pois, issues, nil
}

func decodeVenues(doc rawDocument) ([]domain.Venue, []string, error) {
	var parsed venueDocument
	if err := unmarshal(doc, &parsed); err != nil {
		return []domain.Venue{}, nil, err
	}

	venues := make([]domain.Venue, 0, len(parsed.Restaurants))
	var issues []string
	for i, rec := range parsed.Restaurants {
		if err := validate.Struct(rec); err != nil {
			issues = append(issues, fmt.Sprintf("venue[%d] id=%q skipped: %s", i, rec.ID, describe(err)))
			continue
		}
		v, notes := rec.toDomain()
		for _, n := range notes {
			issues = append(issues, fmt.Sprintf("venue %q: %s", v.ID, n))
		}
		venues = append(venues, v)
	}

	return venues, issues, nil
}

func unmarshal(doc rawDocument, out any) error {
	if doc.err != nil {
		return doc.err
	}

	var err error
	switch doc.format {
	case formatYAML:
		err = yaml.Unmarshal(doc.data, out)
	default:
		err = json.Unmarshal(doc.data, out)
	}
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func (r poiRecord) toDomain() (domain.POI, []string) {
	var notes []string

	p := domain.POI{
		ID:            strings.TrimSpace(r.ID),
		Name:          strings.TrimSpace(r.Name),
		Categories:    domain.NormalizeLabels(r.Category),
		Tags:          domain.NormalizeLabels(r.Tags),
		Description:   r.Description,
		DurationHours: defaultDurationHours,
		Rating:        defaultRating,
		District:      r.District,
		Location:      r.Coordinates.toDomain(),
	}

	if r.CostUSD != nil {
		p.CostUSD = *r.CostUSD
	}

	if r.DurationHours != nil {
		p.DurationHours = *r.DurationHours
	} else {
		notes = append(notes, fmt.Sprintf("duration_hours missing, using %.1fh", defaultDurationHours))
	}

	switch {
	case r.AvgRating != nil:
		p.Rating = *r.AvgRating
	case r.Rating != nil:
		p.Rating = *r.Rating
	}

	bt, known := domain.ParseBestTime(r.BestTime)
	if !known {
		notes = append(notes, fmt.Sprintf("best_time %q unknown, using any", r.BestTime))
	}
	p.BestTime = bt

	return p, notes
}

func (r venueRecord) toDomain() (domain.Venue, []string) {
	var notes []string

	v := domain.Venue{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Category:    r.Category,
		AvgCheckUSD: *r.AvgCheckUSD,
		Rating:      defaultRating,
		OpensAt:     0,
		ClosesAt:    domain.EndOfDay,
		Location:    r.Coordinates.toDomain(),
	}

	if r.Rating != nil {
		v.Rating = *r.Rating
	}

	switch {
	case r.OpensAt != "" && r.ClosingHours != "":
		// Both were validated as clocks.
		v.OpensAt, _ = domain.ParseClock(r.OpensAt)
		v.ClosesAt, _ = domain.ParseClock(r.ClosingHours)
	case r.OpeningHours != "":
		opens, closes, ok := parseHoursRange(r.OpeningHours)
		if ok {
			v.OpensAt, v.ClosesAt = opens, closes
		} else {
			notes = append(notes, fmt.Sprintf("opening_hours %q not understood, assuming open all day", r.OpeningHours))
		}
	default:
		notes = append(notes, "no opening hours, assuming open all day")
	}

	return v, notes
}

func (c *coordinatesRecord) toDomain() *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func parseHoursRange(s string) (opens, closes domain.Clock, ok bool) {
	m := hoursRangeRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	opens, err := domain.ParseClock(m[1])
	if err != nil {
		return 0, 0, false
	}
	closes, err = domain.ParseClock(m[2])
	if err != nil {
		return 0, 0, false
	}

	return opens, closes, true
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
