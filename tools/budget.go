package tools

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

const estimateBudgetName = "budget.estimate"

// dailyCosts are rough per-currency daily rates used alongside the
// accommodation price: entry fees per attraction, food per day, and local
// transport per day.
var dailyCosts = map[string]struct {
	Activity  float64
	Food      float64
	Transport float64
}{
	"INR": {Activity: 500, Food: 1500, Transport: 400},
	"USD": {Activity: 25, Food: 60, Transport: 15},
	"EUR": {Activity: 22, Food: 55, Transport: 14},
}

// NewEstimateBudgetTool returns the budget.estimate tool. The estimate sums
// accommodation, attraction entries, food, and local transport. When the
// caller supplies a budget ceiling the status classifies the total against
// it; otherwise the estimate reports on_track.
func NewEstimateBudgetTool() *tool.FunctionTool {
	return tool.NewFunctionTool(
		estimateBudgetName,
		"Estimate the total trip cost from stay price, duration, and planned stops",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"nights":          map[string]any{"type": "integer", "description": "Number of nights"},
				"price_per_night": map[string]any{"type": "number", "description": "Accommodation price per night"},
				"currency":        map[string]any{"type": "string", "description": "Currency code, defaults to USD"},
				"poi_count":       map[string]any{"type": "integer", "description": "Number of planned attractions"},
				"budget":          map[string]any{"type": "number", "description": "Traveler's budget ceiling in the same currency"},
			},
			"required": []string{"nights", "price_per_night"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			nights := argInt(args, "nights", 1)
			if nights < 1 {
				nights = 1
			}
			pricePerNight := argFloat(args, "price_per_night", 0)
			currency := argString(args, "currency", "USD")
			poiCount := argInt(args, "poi_count", 0)

			rates, ok := dailyCosts[currency]
			if !ok {
				rates = dailyCosts["USD"]
			}

			days := nights + 1
			breakdown := map[string]float64{
				"accommodation": pricePerNight * float64(nights),
				"activities":    rates.Activity * float64(poiCount),
				"food":          rates.Food * float64(days),
				"transport":     rates.Transport * float64(days),
			}

			total := 0.0
			for _, v := range breakdown {
				total += v
			}

			estimate := core.BudgetEstimate{
				Total:     total,
				Currency:  currency,
				Breakdown: breakdown,
				Status:    core.BudgetOnTrack,
				Justification: fmt.Sprintf(
					"%d nights accommodation plus food, transport, and %d attractions", nights, poiCount),
			}

			if ceiling := argFloat(args, "budget", 0); ceiling > 0 {
				switch {
				case total <= 0.8*ceiling:
					estimate.Status = core.BudgetUnder
					estimate.Justification = fmt.Sprintf("total %.0f %s is well within the %.0f budget", total, currency, ceiling)
				case total <= ceiling:
					estimate.Status = core.BudgetOnTrack
					estimate.Justification = fmt.Sprintf("total %.0f %s fits the %.0f budget", total, currency, ceiling)
				default:
					estimate.Status = core.BudgetExceeded
					estimate.Justification = fmt.Sprintf("total %.0f %s exceeds the %.0f budget", total, currency, ceiling)
				}
			}

			return estimate, nil
		},
	)
}
