package plan

import "math"

const (
	budgetMinFactor = 0.8
	budgetMaxFactor = 1.2
)

// EstimateBudget sums per-activity cost scaled by traveler count, bucketed by
// activity type into the four budget categories. Min and max form a crude
// uncertainty band of 80% and 120% of the raw sum.
func EstimateBudget(p *TravelPlan, req UserRequirements) Budget {
	travelers := req.Travelers
	if travelers < 1 {
		travelers = 1
	}

	var breakdown BudgetBreakdown
	for _, day := range p.Days {
		for _, a := range day.Activities {
			cost := a.EstimatedCost * float64(travelers)
			switch a.Type {
			case ActivityHotel:
				breakdown.Accommodation += cost
			case ActivityRestaurant:
				breakdown.Food += cost
			case ActivityTransport:
				breakdown.Transport += cost
			default:
				breakdown.Activities += cost
			}
		}
	}

	total := breakdown.Accommodation + breakdown.Food + breakdown.Activities + breakdown.Transport
	return Budget{
		Min:       math.Round(total * budgetMinFactor),
		Max:       math.Round(total * budgetMaxFactor),
		Breakdown: breakdown,
	}
}

// recomputeDailySummaries refreshes each day's cost total and walking
// distance from its current activities, keeping any model-written highlights.
func recomputeDailySummaries(p *TravelPlan) {
	for i := range p.Days {
		var total float64
		for _, a := range p.Days[i].Activities {
			total += a.EstimatedCost
		}
		p.Days[i].DailySummary.TotalCost = total
		p.Days[i].DailySummary.WalkingDistanceKm = walkingDistanceKm(p.Days[i].Activities)
	}
}
