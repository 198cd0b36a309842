package plan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/analyze"
	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
)

const analysisResponse = `{
  "locations": [{"name": "西湖", "type": "landmark", "mentioned_count": 2, "popularity_score": 90}],
  "activities": [{"name": "环湖骑行", "category": "nature", "mentioned_count": 1, "popularity_score": 70}],
  "themes": ["自然", "休闲"],
  "quality_score": 85,
  "recommendations": ["早起看日出"],
  "sentiment": {"overall": "positive", "score": 88},
  "travel_insights": {"destination_type": "city", "travel_style": ["慢节奏"], "budget_level": "medium", "min_recommended_days": 2, "max_recommended_days": 3}
}`

const planResponse = `{
  "title": "杭州西湖两日游",
  "destination": "杭州",
  "totalDays": 99,
  "days": [
    {
      "dayNumber": 7,
      "title": "西湖环线",
      "activities": [
        {"id": "model-made-up", "name": "断桥残雪", "type": "ATTRACTION", "order": 42,
         "location": {"name": "断桥", "coordinates": [30.258, 120.151]}, "estimatedCost": 0},
        {"name": "楼外楼午餐", "type": "RESTAURANT",
         "location": {"name": "楼外楼", "coordinates": [30.253, 120.143]}, "estimatedCost": 150}
      ]
    },
    {
      "dayNumber": 1,
      "title": "灵隐祈福",
      "activities": [
        {"name": "灵隐寺", "type": "ATTRACTION",
         "location": {"name": "灵隐寺", "coordinates": [30.240, 120.101]}, "estimatedCost": 75}
      ]
    }
  ]
}`

func testContents() []extract.ExtractedContent {
	return []extract.ExtractedContent{{
		Title:    "杭州西湖攻略",
		Platform: extract.PlatformXiaohongshu,
		Stats:    extract.Stats{Likes: 5000, Comments: 300, Shares: 120},
	}}
}

func newTestGenerator(client llm.Client) *Generator {
	return NewGenerator(client, analyze.NewAnalyzer(client), NewBookingService(), nil)
}

func TestGenerateTravelPlanEmptyContents(t *testing.T) {
	client := llm.NewMockClient("unused")
	g := newTestGenerator(client)

	_, err := g.GenerateTravelPlan(context.Background(), nil, UserRequirements{})
	require.ErrorIs(t, err, ErrNoSources)
	require.Zero(t, client.Calls(), "empty batch must not reach the LLM")
}

func TestGenerateTravelPlanHappyPath(t *testing.T) {
	client := llm.NewMockClient(analysisResponse, planResponse)
	g := newTestGenerator(client)

	p, err := g.GenerateTravelPlan(context.Background(), testContents(), UserRequirements{DurationDays: 2, Travelers: 2})
	require.NoError(t, err)

	require.Equal(t, "杭州西湖两日游", p.Title)
	require.Equal(t, "杭州", p.Destination)

	// Normalization overrides whatever the model returned.
	require.Equal(t, 2, p.TotalDays)
	require.Equal(t, 1, p.Days[0].DayNumber)
	require.Equal(t, 2, p.Days[1].DayNumber)
	for d, day := range p.Days {
		for a, act := range day.Activities {
			require.Equalf(t, a+1, act.Order, "day %d activity %d", d, a)
			require.NotEqual(t, "model-made-up", act.ID)
		}
	}
	require.Equal(t, "activity-0-0", p.Days[0].Activities[0].ID)

	// Schedule starts at 09:00 every day.
	require.Equal(t, "09:00", p.Days[0].Activities[0].StartTime)
	require.Equal(t, "09:00", p.Days[1].Activities[0].StartTime)

	// Budget reflects costs × travelers.
	require.Equal(t, 300.0, p.EstimatedBudget.Breakdown.Food)
	require.Equal(t, 150.0, p.EstimatedBudget.Breakdown.Activities)
	require.LessOrEqual(t, p.EstimatedBudget.Min, p.EstimatedBudget.Max)

	// Mocked booking suggestions attach to the destination.
	require.NotEmpty(t, p.Flights)
	require.NotEmpty(t, p.Hotels)
	require.Equal(t, "杭州", p.Flights[0].To)
}

func TestGenerateTravelPlanSurvivesAnalysisFailure(t *testing.T) {
	// First scripted response breaks the analyzer; the generator falls back
	// to local insights and proceeds to the plan call.
	client := llm.NewMockClient("not json at all", planResponse)
	g := newTestGenerator(client)

	p, err := g.GenerateTravelPlan(context.Background(), testContents(), UserRequirements{Travelers: 1})
	require.NoError(t, err)
	require.Equal(t, "杭州", p.Destination)
}

func TestGenerateTravelPlanBadFormat(t *testing.T) {
	client := llm.NewMockClient(analysisResponse, `{"title": "缺少目的地", "days": []}`)
	g := newTestGenerator(client)

	_, err := g.GenerateTravelPlan(context.Background(), testContents(), UserRequirements{Travelers: 1})
	require.ErrorIs(t, err, ErrBadPlanFormat)
}

func TestGenerateTravelPlanDoesNotMutateRequirements(t *testing.T) {
	client := llm.NewMockClient(analysisResponse, planResponse)
	g := newTestGenerator(client)

	req := UserRequirements{Travelers: 1}
	_, err := g.GenerateTravelPlan(context.Background(), testContents(), req)
	require.NoError(t, err)
	require.Empty(t, req.TravelStyle, "caller's requirements must stay untouched")
	require.Empty(t, req.Interests)
	require.Zero(t, req.DurationDays)
}

func TestAdjustTravelPlanPreservesIdentity(t *testing.T) {
	client := llm.NewMockClient(planResponse)
	g := newTestGenerator(client)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	original := &TravelPlan{
		ID:        "p1",
		NoteID:    "n9",
		Title:     "旧行程",
		CreatedAt: created,
		UpdatedAt: created,
	}

	adjusted, err := g.AdjustTravelPlan(context.Background(), original, "把第二天改得轻松一点")
	require.NoError(t, err)

	require.Equal(t, "p1", adjusted.ID)
	require.Equal(t, "n9", adjusted.NoteID)
	require.Equal(t, created, adjusted.CreatedAt)
	require.True(t, adjusted.UpdatedAt.After(original.UpdatedAt), "updatedAt must be strictly greater")
	require.Equal(t, "杭州西湖两日游", adjusted.Title)
}

func TestAdjustTravelPlanKeepsTravelerCount(t *testing.T) {
	client := llm.NewMockClient(planResponse)
	g := newTestGenerator(client)

	original := &TravelPlan{ID: "p1", Travelers: 4}
	adjusted, err := g.AdjustTravelPlan(context.Background(), original, "换一家餐厅")
	require.NoError(t, err)

	require.Equal(t, 4, adjusted.Travelers)
	// Budget recompute scales by the original party size, not a single
	// traveler: 150 food + 75 attractions, times four.
	require.Equal(t, 600.0, adjusted.EstimatedBudget.Breakdown.Food)
	require.Equal(t, 300.0, adjusted.EstimatedBudget.Breakdown.Activities)
}

func TestGeneratedPlanCarriesTravelerCount(t *testing.T) {
	client := llm.NewMockClient(analysisResponse, planResponse)
	g := newTestGenerator(client)

	p, err := g.GenerateTravelPlan(context.Background(), testContents(), UserRequirements{DurationDays: 2, Travelers: 3})
	require.NoError(t, err)
	require.Equal(t, 3, p.Travelers)
}

func TestAdjustTravelPlanMonotonicUpdatedAt(t *testing.T) {
	client := llm.NewMockClient(planResponse)
	g := newTestGenerator(client)

	// Clock frozen before the plan's own updatedAt: the stamp still moves
	// strictly forward.
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return frozen }

	original := &TravelPlan{ID: "p1", UpdatedAt: frozen.Add(time.Hour)}
	adjusted, err := g.AdjustTravelPlan(context.Background(), original, "调整")
	require.NoError(t, err)
	require.True(t, adjusted.UpdatedAt.After(original.UpdatedAt))
}

func TestParseCommand(t *testing.T) {
	client := llm.NewMockClient(`{"action": "move", "target": "activity-0-1", "parameters": {"toDay": 2}}`)
	g := newTestGenerator(client)

	cmd, err := g.ParseCommand(context.Background(), "把第一天的午餐挪到第二天")
	require.NoError(t, err)
	require.Equal(t, "move", cmd.Action)
	require.Equal(t, "activity-0-1", cmd.Target)

	client = llm.NewMockClient(`{"target": "x"}`)
	g = newTestGenerator(client)
	_, err = g.ParseCommand(context.Background(), "???")
	require.ErrorIs(t, err, ErrBadPlanFormat)
}

func TestGenerateChatResponse(t *testing.T) {
	client := llm.NewMockClient("第二天的行程比较轻松，适合带孩子出行。")
	g := newTestGenerator(client)

	reply, err := g.GenerateChatResponse(context.Background(), "第二天累吗？", &TravelPlan{Title: "杭州两日游", Destination: "杭州", Days: []TravelDay{{}}})
	require.NoError(t, err)
	require.Contains(t, reply, "第二天")
}
