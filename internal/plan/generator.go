package plan

import (
	"context"
	"fmt"
	"time"

	"tripcraft/internal/analyze"
	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
	"tripcraft/internal/logging"
	"tripcraft/internal/observability"
)

// ErrNoSources is returned before any LLM call when the content batch is
// empty.
var ErrNoSources = fmt.Errorf("at least one content source required")

// ErrBadPlanFormat marks a model response missing the required plan fields.
var ErrBadPlanFormat = fmt.Errorf("incorrectly formatted plan")

// Generator orchestrates the fixed pipeline: enhance requirements → one LLM
// call → per-day route and time optimization → budget recompute → attach
// booking suggestions.
type Generator struct {
	client   llm.Client
	analyzer *analyze.Analyzer
	booking  *BookingService
	metric   DistanceMetric
	logger   logging.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewGenerator(client llm.Client, analyzer *analyze.Analyzer, booking *BookingService, metrics *observability.Metrics) *Generator {
	return &Generator{
		client:   client,
		analyzer: analyzer,
		booking:  booking,
		metric:   EuclideanDistance{},
		logger:   logging.NewComponentLogger("plan-generator"),
		metrics:  metrics,
		now:      time.Now,
	}
}

// GenerateTravelPlan builds a full itinerary from extracted contents and user
// requirements. The caller's requirements value is never mutated.
func (g *Generator) GenerateTravelPlan(ctx context.Context, contents []extract.ExtractedContent, req UserRequirements) (*TravelPlan, error) {
	if len(contents) == 0 {
		return nil, ErrNoSources
	}
	started := g.now()

	analysis, err := g.analyzer.AnalyzeContents(ctx, contents)
	if err != nil {
		// Model analysis is an enrichment step: fall back to the local
		// aggregation heuristics and keep generating.
		g.logger.Warn("content analysis unavailable, falling back to local insights: %v", err)
		analysis = &analyze.AnalysisResult{
			Locations:  analyze.LocationInsights(contents),
			Activities: analyze.ActivityInsights(contents),
		}
	}

	enhanced := g.enhanceRequirements(req, analysis)

	raw, err := g.client.Complete(ctx, buildPlanPrompt(contents, analysis, enhanced))
	if err != nil {
		return nil, fmt.Errorf("travel plan generation failed: %w", err)
	}

	p, err := decodePlan(raw)
	if err != nil {
		return nil, err
	}

	p.Travelers = enhanced.Travelers
	g.postProcess(p, enhanced)
	g.attachBookings(ctx, p, enhanced)

	g.metrics.RecordPlanGenerated(g.now().Sub(started))
	g.logger.Info("generated plan %q: %d days, budget %.0f-%.0f",
		p.Title, p.TotalDays, p.EstimatedBudget.Min, p.EstimatedBudget.Max)
	return p, nil
}

// AdjustTravelPlan regenerates the whole plan from a free-text instruction.
// Identity fields carry over from the input; updatedAt is always strictly
// greater than the input's.
func (g *Generator) AdjustTravelPlan(ctx context.Context, current *TravelPlan, instruction string) (*TravelPlan, error) {
	if current == nil {
		return nil, fmt.Errorf("no plan to adjust")
	}

	raw, err := g.client.Complete(ctx, buildAdjustmentPrompt(current, instruction))
	if err != nil {
		return nil, fmt.Errorf("travel plan adjustment failed: %w", err)
	}

	adjusted, err := decodePlan(raw)
	if err != nil {
		return nil, err
	}

	// The model response rarely echoes the traveler count, so the budget
	// recompute carries it over from the plan being adjusted.
	if adjusted.Travelers < 1 {
		adjusted.Travelers = current.Travelers
	}
	if adjusted.Travelers < 1 {
		adjusted.Travelers = 1
	}
	g.postProcess(adjusted, UserRequirements{Travelers: adjusted.Travelers})

	adjusted.ID = current.ID
	adjusted.NoteID = current.NoteID
	adjusted.CreatedAt = current.CreatedAt
	adjusted.Flights = current.Flights
	adjusted.Hotels = current.Hotels

	updatedAt := g.now()
	if !updatedAt.After(current.UpdatedAt) {
		updatedAt = current.UpdatedAt.Add(time.Millisecond)
	}
	adjusted.UpdatedAt = updatedAt

	return adjusted, nil
}

// ParseCommand turns a free-text instruction into a structured command.
func (g *Generator) ParseCommand(ctx context.Context, input string) (*Command, error) {
	raw, err := g.client.Complete(ctx, buildCommandPrompt(input))
	if err != nil {
		return nil, fmt.Errorf("command parsing failed: %w", err)
	}

	var cmd Command
	if err := llm.DecodeJSON(raw, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPlanFormat, err)
	}
	if cmd.Action == "" {
		return nil, fmt.Errorf("%w: missing action", ErrBadPlanFormat)
	}
	return &cmd, nil
}

// GenerateChatResponse answers a conversational message about the plan.
// The response is free text, not JSON.
func (g *Generator) GenerateChatResponse(ctx context.Context, message string, current *TravelPlan) (string, error) {
	response, err := g.client.Complete(ctx, buildChatPrompt(message, current))
	if err != nil {
		return "", fmt.Errorf("chat response failed: %w", err)
	}
	return response, nil
}

// enhanceRequirements back-fills empty style/interest lists from the
// analysis. Works on a copy; slices are cloned before append.
func (g *Generator) enhanceRequirements(req UserRequirements, analysis *analyze.AnalysisResult) UserRequirements {
	enhanced := req
	enhanced.TravelStyle = append([]string(nil), req.TravelStyle...)
	enhanced.Interests = append([]string(nil), req.Interests...)

	if enhanced.DurationDays < 1 {
		enhanced.DurationDays = analysis.TravelInsights.MinRecommendedDays
		if enhanced.DurationDays < 1 {
			enhanced.DurationDays = 3
		}
	}
	if enhanced.Travelers < 1 {
		enhanced.Travelers = 1
	}
	if len(enhanced.TravelStyle) == 0 {
		enhanced.TravelStyle = append([]string(nil), analysis.TravelInsights.TravelStyle...)
	}
	if len(enhanced.Interests) == 0 {
		enhanced.Interests = append(enhanced.Interests, analysis.Themes...)
	}
	return enhanced
}

// decodePlan parses a model response and validates the required shape.
func decodePlan(raw string) (*TravelPlan, error) {
	var p TravelPlan
	if err := llm.DecodeJSON(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPlanFormat, err)
	}
	if p.Title == "" || p.Destination == "" || len(p.Days) == 0 {
		return nil, fmt.Errorf("%w: missing title, destination or days", ErrBadPlanFormat)
	}
	return &p, nil
}

// postProcess normalizes day/activity numbering, optimizes each day's route
// and schedule, and recomputes roll-ups. Runs on every decoded plan so the
// model's own ids and ordering never leak through.
func (g *Generator) postProcess(p *TravelPlan, req UserRequirements) {
	p.TotalDays = len(p.Days)

	for d := range p.Days {
		day := &p.Days[d]
		day.DayNumber = d + 1

		day.Activities = OptimizeRoute(day.Activities, nil, g.metric)
		day.Activities = OptimizeTimeSchedule(day.Activities)

		for a := range day.Activities {
			act := &day.Activities[a]
			act.ID = fmt.Sprintf("activity-%d-%d", d, a)
			act.Order = a + 1
			if act.Type == "" {
				act.Type = ActivityGeneric
			}
		}
	}

	recomputeDailySummaries(p)
	p.EstimatedBudget = EstimateBudget(p, req)
}

// attachBookings adds mocked flight and hotel suggestions. Best effort: the
// plan is complete without them.
func (g *Generator) attachBookings(ctx context.Context, p *TravelPlan, req UserRequirements) {
	if g.booking == nil {
		return
	}
	flights, err := g.booking.SearchFlights(ctx, FlightQuery{To: p.Destination, Travelers: req.Travelers})
	if err != nil {
		g.logger.Warn("flight search failed: %v", err)
	} else {
		p.Flights = flights
	}
	hotels, err := g.booking.SearchHotels(ctx, HotelQuery{Destination: p.Destination, Travelers: req.Travelers})
	if err != nil {
		g.logger.Warn("hotel search failed: %v", err)
	} else {
		p.Hotels = hotels
	}
}
