package agent

import (
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// defaultNights is assumed when the conversation never fixed travel dates.
const defaultNights = 3

// BudgetAgent estimates the total trip cost through budget.estimate, feeding
// it the accommodation price and the number of planned stops. An unavailable
// estimator degrades to partial; the plan is still actionable without a
// price tag.
type BudgetAgent struct {
	BaseAgent
}

// NewBudgetAgent constructs a BudgetAgent.
func NewBudgetAgent(opts ...Option) *BudgetAgent {
	a := &BudgetAgent{
		BaseAgent: NewBaseAgent(core.AgentBudget, "Estimates trip cost against the traveler's budget"),
	}
	for _, o := range opts {
		o(&a.BaseAgent)
	}
	return a
}

var _ core.Agent = (*BudgetAgent)(nil)

// Execute implements core.Agent.
func (a *BudgetAgent) Execute(sc *core.StepContext) core.AgentResult {
	if err := sc.Err(); err != nil {
		return core.FailureResult(err.Error())
	}

	plan := sc.Conversation.Plan

	nights := defaultNights
	if plan.Dates != nil {
		nights = plan.Dates.Nights()
	}
	pricePerNight := 0.0
	currency := "USD"
	if plan.Accommodation != nil {
		pricePerNight = plan.Accommodation.PricePerNight
		if plan.Accommodation.Currency != "" {
			currency = plan.Accommodation.Currency
		}
	}

	rec := sc.Tools.Invoke(sc, "budget.estimate", map[string]any{
		"nights":          nights,
		"price_per_night": pricePerNight,
		"currency":        currency,
		"poi_count":       len(plan.PointsOfInterest),
	})
	if !rec.OK() {
		return core.AgentResult{
			Status: core.StepPartial,
			Reason: fmt.Sprintf("budget estimator unavailable: %s", rec.Fault.Message),
			Fragment: core.Fragment{
				Phases: []core.Phase{core.PhaseBudget},
				Turns:  []core.Turn{core.NewAgentTurn(a.Name(), "Could not compute a cost estimate; plan prices individually.")},
			},
			ToolCalls: []core.ToolInvocationRecord{rec},
		}
	}

	estimate, ok := rec.Result.(core.BudgetEstimate)
	if !ok {
		return core.FailureResult("budget estimate result malformed", rec)
	}

	summary := a.phrase(sc,
		"You are a travel budget specialist. Rephrase the finding as one friendly sentence.",
		fmt.Sprintf("Estimated total cost: %.0f %s for %d nights.", estimate.Total, estimate.Currency, nights),
	)

	return core.AgentResult{
		Status: core.StepSuccess,
		Fragment: core.Fragment{
			Budget: &estimate,
			Phases: []core.Phase{core.PhaseBudget},
			Turns:  []core.Turn{core.NewAgentTurn(a.Name(), summary)},
		},
		ToolCalls: []core.ToolInvocationRecord{rec},
	}
}
