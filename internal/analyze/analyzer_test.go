package analyze

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
)

func sampleContent() extract.ExtractedContent {
	return extract.ExtractedContent{
		Title:       "成都3天2夜攻略",
		Description: "熊猫基地和宽窄巷子必去",
		Platform:    extract.PlatformXiaohongshu,
		URL:         "https://www.xiaohongshu.com/explore/a1",
		Locations: []extract.Location{
			{Name: "成都", Type: extract.LocationCity},
			{Name: "熊猫基地", Type: extract.LocationLandmark},
		},
		Activities: []extract.Activity{
			{Name: "熊猫基地看大熊猫", Category: extract.ActivityNature, Cost: 55},
		},
		Tags:  []string{"成都旅游", "美食"},
		Stats: extract.Stats{Likes: 12000, Comments: 856, Shares: 2300},
	}
}

const validAnalysisJSON = `{
  "locations": [{"name": "成都", "type": "city", "mentioned_count": 0, "popularity_score": 150}],
  "activities": [{"name": "看大熊猫", "category": "nature", "mentioned_count": 2, "popularity_score": 80}],
  "themes": ["自然", "美食"],
  "quality_score": 120,
  "recommendations": ["早上去熊猫基地"],
  "sentiment": {"overall": "positive", "score": 85},
  "travel_insights": {"destination_type": "city", "travel_style": ["休闲"], "budget_level": "medium", "min_recommended_days": 2, "max_recommended_days": 4}
}`

func TestAnalyzeContentsEmptyBatch(t *testing.T) {
	client := llm.NewMockClient("unused")
	analyzer := NewAnalyzer(client)

	_, err := analyzer.AnalyzeContents(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoContents)
	require.Zero(t, client.Calls(), "empty batch must not reach the LLM")
}

func TestAnalyzeContentsSanitizes(t *testing.T) {
	client := llm.NewMockClient(validAnalysisJSON)
	analyzer := NewAnalyzer(client)

	result, err := analyzer.AnalyzeContents(context.Background(), []extract.ExtractedContent{sampleContent()})
	require.NoError(t, err)

	// Scores clamp to [0,100], mention counts floor at 1.
	require.Equal(t, 100.0, result.QualityScore)
	require.Equal(t, 1, result.Locations[0].MentionedCount)
	require.Equal(t, 100.0, result.Locations[0].PopularityScore)
	require.Equal(t, 2, result.Activities[0].MentionedCount)
	require.Equal(t, 2, result.TravelInsights.MinRecommendedDays)
}

func TestAnalyzeContentsPromptCarriesSources(t *testing.T) {
	client := llm.NewMockClient(validAnalysisJSON)
	analyzer := NewAnalyzer(client)

	_, err := analyzer.AnalyzeContents(context.Background(), []extract.ExtractedContent{sampleContent()})
	require.NoError(t, err)

	prompt := client.LastPrompt()
	require.Contains(t, prompt, "成都3天2夜攻略")
	require.Contains(t, prompt, "熊猫基地")
	require.Contains(t, prompt, "12000")
}

func TestAnalyzeContentsFencedResponse(t *testing.T) {
	client := llm.NewMockClient("```json\n" + validAnalysisJSON + "\n```")
	analyzer := NewAnalyzer(client)

	result, err := analyzer.AnalyzeContents(context.Background(), []extract.ExtractedContent{sampleContent()})
	require.NoError(t, err)
	require.Equal(t, "positive", result.Sentiment.Overall)
}

func TestAnalyzeContentsMalformedResponse(t *testing.T) {
	client := llm.NewMockClient("抱歉，我无法分析这些内容。")
	analyzer := NewAnalyzer(client)

	_, err := analyzer.AnalyzeContents(context.Background(), []extract.ExtractedContent{sampleContent()})
	require.ErrorIs(t, err, ErrFormat)
}

func TestAnalyzeContentQualitySuccess(t *testing.T) {
	client := llm.NewMockClient(`{"quality_score": 88, "relevance_score": 92, "completeness_score": 75, "issues": [], "suggestions": ["补充交通信息"]}`)
	analyzer := NewAnalyzer(client)

	report := analyzer.AnalyzeContentQuality(context.Background(), sampleContent())
	require.Equal(t, 88.0, report.QualityScore)
	require.Equal(t, 92.0, report.RelevanceScore)
	require.Equal(t, []string{"补充交通信息"}, report.Suggestions)
}

func TestAnalyzeContentQualityDegradesToNeutral(t *testing.T) {
	failing := llm.NewFailingMockClient(fmt.Errorf("upstream down"))
	report := NewAnalyzer(failing).AnalyzeContentQuality(context.Background(), sampleContent())
	require.Equal(t, QualityReport{QualityScore: 50, RelevanceScore: 50, CompletenessScore: 50}, report)

	garbage := llm.NewMockClient("not json either")
	report = NewAnalyzer(garbage).AnalyzeContentQuality(context.Background(), sampleContent())
	require.Equal(t, 50.0, report.QualityScore)
}
