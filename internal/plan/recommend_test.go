package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
)

func TestDerivePreferences(t *testing.T) {
	client := llm.NewMockClient(`{"preferred_styles": ["慢节奏", "自然"], "preferred_activities": ["徒步"], "budget_level": "medium", "pace_preference": "relaxed"}`)
	engine := NewRecommendationEngine(client)

	profile, err := engine.DerivePreferences(context.Background(), []extract.ExtractedContent{
		{Title: "洱海环湖慢骑", Tags: []string{"自然", "骑行"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"慢节奏", "自然"}, profile.PreferredStyles)
	require.Equal(t, "relaxed", profile.PacePreference)
}

func TestDerivePreferencesEmptyHistory(t *testing.T) {
	client := llm.NewMockClient("unused")
	_, err := NewRecommendationEngine(client).DerivePreferences(context.Background(), nil)
	require.Error(t, err)
	require.Zero(t, client.Calls())
}

func TestScoreContentsRanksByFit(t *testing.T) {
	engine := NewRecommendationEngine(llm.NewMockClient())
	profile := &PreferenceProfile{
		PreferredStyles:     []string{"自然"},
		PreferredActivities: []string{"nature"},
	}

	matching := extract.ExtractedContent{
		Title: "自然风光徒步路线",
		Activities: []extract.Activity{
			{Name: "山间徒步", Category: extract.ActivityNature},
		},
		Stats: extract.Stats{Likes: 100},
	}
	unrelated := extract.ExtractedContent{
		Title: "市区购物指南",
		Stats: extract.Stats{Likes: 100},
	}

	scored := engine.ScoreContents(profile, []extract.ExtractedContent{unrelated, matching})

	require.Len(t, scored, 2)
	require.Equal(t, "自然风光徒步路线", scored[0].Content.Title)
	require.Greater(t, scored[0].Score, scored[1].Score)
}

func TestScoreContentsCapsAtHundred(t *testing.T) {
	engine := NewRecommendationEngine(llm.NewMockClient())
	viral := extract.ExtractedContent{Stats: extract.Stats{Likes: 10_000_000}}

	scored := engine.ScoreContents(nil, []extract.ExtractedContent{viral})
	require.Equal(t, 100.0, scored[0].Score)
}
