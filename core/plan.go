package core

import "time"

// Phase names a portion of the trip plan tracked for completion.
type Phase string

const (
	// PhaseLocation covers destination selection and points of interest.
	PhaseLocation Phase = "location"
	// PhaseStay covers accommodation.
	PhaseStay Phase = "stay"
	// PhaseRoute covers route optimization across the points of interest.
	PhaseRoute Phase = "route"
	// PhaseBudget covers cost estimation against the traveler's budget.
	PhaseBudget Phase = "budget"
)

// Phases lists all planning phases in planner precedence order.
func Phases() []Phase {
	return []Phase{PhaseLocation, PhaseStay, PhaseRoute, PhaseBudget}
}

// POI is a point of interest recommended for the trip.
type POI struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Address   string   `json:"address,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	Reviews   []Review `json:"reviews,omitempty"`
	Lat       float64  `json:"lat,omitempty"`
	Lng       float64  `json:"lng,omitempty"`
	Highlight string   `json:"highlight,omitempty"`
}

// Review is a single user review attached to a POI.
type Review struct {
	Author    string  `json:"author,omitempty"`
	Text      string  `json:"text"`
	Rating    float64 `json:"rating,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
}

// HotelOption is an accommodation candidate.
type HotelOption struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Type          string  `json:"type,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	PricePerNight float64 `json:"price_per_night"`
	Currency      string  `json:"currency,omitempty"`
	Address       string  `json:"address,omitempty"`
}

// RouteLeg is a single hop in the optimized route.
type RouteLeg struct {
	From       string        `json:"from"`
	To         string        `json:"to"`
	DistanceKM float64       `json:"distance_km"`
	Duration   time.Duration `json:"duration"`
	Mode       string        `json:"mode,omitempty"`
}

// RoutePlan is the ordered visiting route across the trip's points of interest.
type RoutePlan struct {
	Order           []string      `json:"order"`
	Legs            []RouteLeg    `json:"legs,omitempty"`
	TotalDistanceKM float64       `json:"total_distance_km"`
	TotalDuration   time.Duration `json:"total_duration"`
}

// BudgetStatus classifies the estimate against the traveler's budget.
type BudgetStatus string

const (
	// BudgetUnder means the estimate is comfortably below the budget.
	BudgetUnder BudgetStatus = "under_budget"
	// BudgetOnTrack means the estimate fits the budget.
	BudgetOnTrack BudgetStatus = "on_track"
	// BudgetExceeded means the estimate exceeds the budget.
	BudgetExceeded BudgetStatus = "exceeded"
)

// BudgetEstimate is the computed cost breakdown for the trip.
type BudgetEstimate struct {
	Total         float64            `json:"total"`
	Currency      string             `json:"currency,omitempty"`
	Breakdown     map[string]float64 `json:"breakdown,omitempty"`
	Status        BudgetStatus       `json:"status,omitempty"`
	Justification string             `json:"justification,omitempty"`
}

// DateRange bounds the trip in time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Nights returns the number of nights covered by the range (minimum 1 once
// the range is populated).
func (d DateRange) Nights() int {
	n := int(d.End.Sub(d.Start).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// TripPlan is the structured record the agents collaboratively populate. Each
// sub-field stays at its zero value until the owning phase completes.
type TripPlan struct {
	Destination      string          `json:"destination,omitempty"`
	Dates            *DateRange      `json:"dates,omitempty"`
	PointsOfInterest []POI           `json:"points_of_interest,omitempty"`
	Accommodation    *HotelOption    `json:"accommodation,omitempty"`
	Hotels           []HotelOption   `json:"hotels,omitempty"`
	Route            *RoutePlan      `json:"route,omitempty"`
	Budget           *BudgetEstimate `json:"budget,omitempty"`
}

// Clone returns a deep copy of the plan safe for independent mutation.
func (p TripPlan) Clone() TripPlan {
	c := p
	c.PointsOfInterest = append([]POI(nil), p.PointsOfInterest...)
	for i, poi := range c.PointsOfInterest {
		c.PointsOfInterest[i].Reviews = append([]Review(nil), poi.Reviews...)
	}
	c.Hotels = append([]HotelOption(nil), p.Hotels...)
	if p.Dates != nil {
		d := *p.Dates
		c.Dates = &d
	}
	if p.Accommodation != nil {
		h := *p.Accommodation
		c.Accommodation = &h
	}
	if p.Route != nil {
		r := *p.Route
		r.Order = append([]string(nil), p.Route.Order...)
		r.Legs = append([]RouteLeg(nil), p.Route.Legs...)
		c.Route = &r
	}
	if p.Budget != nil {
		b := *p.Budget
		b.Breakdown = make(map[string]float64, len(p.Budget.Breakdown))
		for k, v := range p.Budget.Breakdown {
			b.Breakdown[k] = v
		}
		c.Budget = &b
	}
	return c
}

// Evidence reports whether the plan carries the data the given phase is
// responsible for. Used by the planner alongside the completed-phase set:
// either a phase mark or plan evidence counts the phase as done, so
// pre-seeded plans skip their phases and degraded steps still advance.
func (p TripPlan) Evidence(phase Phase) bool {
	switch phase {
	case PhaseLocation:
		return p.Destination != "" && len(p.PointsOfInterest) > 0
	case PhaseStay:
		return p.Accommodation != nil
	case PhaseRoute:
		return p.Route != nil
	case PhaseBudget:
		return p.Budget != nil
	default:
		return false
	}
}
