package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
	"tripcraft/internal/logging"
)

// PreferenceProfile is what the recommendation pass derives from a user's
// viewing history.
type PreferenceProfile struct {
	PreferredStyles     []string `json:"preferred_styles"`
	PreferredActivities []string `json:"preferred_activities"`
	BudgetLevel         string   `json:"budget_level"`
	PacePreference      string   `json:"pace_preference"`
}

// ScoredContent pairs a content item with its personalization score.
type ScoredContent struct {
	Content extract.ExtractedContent `json:"content"`
	Score   float64                  `json:"score"`
}

// Scoring weights for content personalization.
const (
	styleMatchWeight    = 30.0
	activityMatchWeight = 25.0
	engagementWeight    = 0.002
	tagMatchWeight      = 10.0
)

// RecommendationEngine personalizes content ranking: one LLM call derives a
// preference profile, then local weighted heuristics score each item.
type RecommendationEngine struct {
	client llm.Client
	logger logging.Logger
}

func NewRecommendationEngine(client llm.Client) *RecommendationEngine {
	return &RecommendationEngine{
		client: client,
		logger: logging.NewComponentLogger("recommendation"),
	}
}

// DerivePreferences asks the model to summarize a viewing history into a
// preference profile.
func (e *RecommendationEngine) DerivePreferences(ctx context.Context, history []extract.ExtractedContent) (*PreferenceProfile, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("preference derivation requires viewing history")
	}

	raw, err := e.client.Complete(ctx, buildPreferencePrompt(history))
	if err != nil {
		return nil, fmt.Errorf("preference derivation failed: %w", err)
	}

	var profile PreferenceProfile
	if err := llm.DecodeJSON(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPlanFormat, err)
	}
	return &profile, nil
}

// ScoreContents ranks contents against a profile, highest score first. Pure
// local heuristics, no LLM.
func (e *RecommendationEngine) ScoreContents(profile *PreferenceProfile, contents []extract.ExtractedContent) []ScoredContent {
	scored := make([]ScoredContent, 0, len(contents))
	for _, c := range contents {
		scored = append(scored, ScoredContent{Content: c, Score: scoreContent(profile, c)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

func scoreContent(profile *PreferenceProfile, c extract.ExtractedContent) float64 {
	text := c.Title + " " + c.Description
	var score float64

	if profile != nil {
		for _, style := range profile.PreferredStyles {
			if strings.Contains(text, style) || containsTag(c.Tags, style) {
				score += styleMatchWeight
			}
		}
		for _, pref := range profile.PreferredActivities {
			for _, act := range c.Activities {
				if strings.Contains(act.Name, pref) || string(act.Category) == pref {
					score += activityMatchWeight
					break
				}
			}
		}
		for _, tag := range c.Tags {
			if containsTag(profile.PreferredStyles, tag) {
				score += tagMatchWeight
			}
		}
	}

	engagement := float64(c.Stats.Likes + c.Stats.Comments*3 + c.Stats.Shares*2)
	score += engagement * engagementWeight

	if score > 100 {
		score = 100
	}
	return score
}

func containsTag(tags []string, target string) bool {
	for _, t := range tags {
		if strings.Contains(t, target) || strings.Contains(target, t) {
			return true
		}
	}
	return false
}

func buildPreferencePrompt(history []extract.ExtractedContent) string {
	var b strings.Builder
	b.WriteString("请根据用户浏览过的旅行内容，总结用户的旅行偏好。\n\n")
	for i, c := range history {
		fmt.Fprintf(&b, "%d. [%s] %s 标签: %s\n", i+1, c.Platform, c.Title, strings.Join(c.Tags, "、"))
	}
	b.WriteString(`
请严格按以下 JSON 格式返回:
{"preferred_styles": [""], "preferred_activities": [""], "budget_level": "budget|medium|luxury", "pace_preference": "relaxed|moderate|packed"}`)
	return b.String()
}
