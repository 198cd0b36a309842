package analyze

import (
	"context"
	"fmt"
	"strings"

	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
	"tripcraft/internal/logging"
)

// ErrNoContents is returned before any LLM call when the batch is empty.
var ErrNoContents = fmt.Errorf("analysis requires at least one extracted content")

// ErrFormat marks a model response that did not decode into the analysis
// shape. Not retried here: the model already answered.
var ErrFormat = fmt.Errorf("AI analysis result format error")

// Analyzer turns a batch of extracted contents into aggregate insights with
// one LLM call.
type Analyzer struct {
	client llm.Client
	logger logging.Logger
}

func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{
		client: client,
		logger: logging.NewComponentLogger("analyzer"),
	}
}

// AnalyzeContents issues a single LLM call over the whole batch and validates
// the returned insight structure. An empty batch fails before any network
// call.
func (a *Analyzer) AnalyzeContents(ctx context.Context, contents []extract.ExtractedContent) (*AnalysisResult, error) {
	if len(contents) == 0 {
		return nil, ErrNoContents
	}

	prompt := buildAnalysisPrompt(contents)
	a.logger.Debug("analyzing %d contents, prompt %d chars", len(contents), len(prompt))

	raw, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("content analysis failed: %w", err)
	}

	var result AnalysisResult
	if err := llm.DecodeJSON(raw, &result); err != nil {
		a.logger.Error("undecodable analysis response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	sanitizeResult(&result)
	return &result, nil
}

// AnalyzeContentQuality scores one item. Unlike batch analysis it never
// fails: any LLM or decode error degrades to a neutral 50/50/50 report.
func (a *Analyzer) AnalyzeContentQuality(ctx context.Context, content extract.ExtractedContent) QualityReport {
	raw, err := a.client.Complete(ctx, buildQualityPrompt(content))
	if err != nil {
		a.logger.Warn("quality analysis failed for %q, using neutral scores: %v", content.Title, err)
		return neutralQualityReport()
	}

	var report QualityReport
	if err := llm.DecodeJSON(raw, &report); err != nil {
		a.logger.Warn("undecodable quality response for %q, using neutral scores: %v", content.Title, err)
		return neutralQualityReport()
	}

	report.QualityScore = clampScore(report.QualityScore)
	report.RelevanceScore = clampScore(report.RelevanceScore)
	report.CompletenessScore = clampScore(report.CompletenessScore)
	return report
}

// sanitizeResult enforces the numeric contract on what the model returned:
// scores in [0,100], mention counts at least 1, no nil slices.
func sanitizeResult(r *AnalysisResult) {
	r.QualityScore = clampScore(r.QualityScore)
	r.Sentiment.Score = clampScore(r.Sentiment.Score)

	for i := range r.Locations {
		if r.Locations[i].MentionedCount < 1 {
			r.Locations[i].MentionedCount = 1
		}
		r.Locations[i].PopularityScore = clampScore(r.Locations[i].PopularityScore)
	}
	for i := range r.Activities {
		if r.Activities[i].MentionedCount < 1 {
			r.Activities[i].MentionedCount = 1
		}
		r.Activities[i].PopularityScore = clampScore(r.Activities[i].PopularityScore)
	}

	if r.Locations == nil {
		r.Locations = []LocationInsight{}
	}
	if r.Activities == nil {
		r.Activities = []ActivityInsight{}
	}
	if r.Themes == nil {
		r.Themes = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	if r.TravelInsights.MinRecommendedDays < 1 {
		r.TravelInsights.MinRecommendedDays = 1
	}
	if r.TravelInsights.MaxRecommendedDays < r.TravelInsights.MinRecommendedDays {
		r.TravelInsights.MaxRecommendedDays = r.TravelInsights.MinRecommendedDays
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// buildAnalysisPrompt serializes a summarized view of every item into one
// natural-language prompt requesting the AnalysisResult JSON shape.
func buildAnalysisPrompt(contents []extract.ExtractedContent) string {
	var b strings.Builder
	b.WriteString("你是一位专业的旅行内容分析师。请分析以下从社交平台提取的旅行内容，")
	b.WriteString("归纳出目的地、景点、活动和整体情感。\n\n")

	for i, c := range contents {
		fmt.Fprintf(&b, "内容 %d（%s）:\n", i+1, c.Platform)
		fmt.Fprintf(&b, "标题: %s\n", c.Title)
		if c.Description != "" {
			fmt.Fprintf(&b, "描述: %s\n", c.Description)
		}
		if names := locationNames(c); len(names) > 0 {
			fmt.Fprintf(&b, "提到的地点: %s\n", strings.Join(names, "、"))
		}
		if names := activityNames(c); len(names) > 0 {
			fmt.Fprintf(&b, "提到的活动: %s\n", strings.Join(names, "、"))
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "标签: %s\n", strings.Join(c.Tags, "、"))
		}
		fmt.Fprintf(&b, "互动: %d 点赞, %d 评论, %d 分享\n\n", c.Stats.Likes, c.Stats.Comments, c.Stats.Shares)
	}

	b.WriteString(`请严格按以下 JSON 格式返回，不要包含任何其他文字:
{
  "locations": [{"name": "", "type": "", "address": "", "mentioned_count": 1, "popularity_score": 0}],
  "activities": [{"name": "", "category": "", "description": "", "estimated_cost": 0, "mentioned_count": 1, "popularity_score": 0}],
  "themes": [""],
  "quality_score": 0,
  "recommendations": [""],
  "sentiment": {"overall": "positive|neutral|negative", "score": 0, "highlights": [""], "concerns": [""]},
  "travel_insights": {"destination_type": "", "travel_style": [""], "budget_level": "budget|medium|luxury", "min_recommended_days": 1, "max_recommended_days": 3}
}`)
	return b.String()
}

func buildQualityPrompt(c extract.ExtractedContent) string {
	var b strings.Builder
	b.WriteString("请评估以下旅行内容的质量，从完整性、相关性和实用性三个维度打分（0-100）。\n\n")
	fmt.Fprintf(&b, "平台: %s\n标题: %s\n描述: %s\n标签: %s\n\n",
		c.Platform, c.Title, c.Description, strings.Join(c.Tags, "、"))
	b.WriteString(`请严格按以下 JSON 格式返回:
{"quality_score": 0, "relevance_score": 0, "completeness_score": 0, "issues": [""], "suggestions": [""]}`)
	return b.String()
}

func locationNames(c extract.ExtractedContent) []string {
	names := make([]string, 0, len(c.Locations))
	for _, l := range c.Locations {
		names = append(names, l.Name)
	}
	return names
}

func activityNames(c extract.ExtractedContent) []string {
	names := make([]string, 0, len(c.Activities))
	for _, a := range c.Activities {
		names = append(names, a.Name)
	}
	return names
}
