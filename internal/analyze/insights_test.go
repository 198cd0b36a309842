package analyze

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/extract"
)

func TestLocationInsightsMergesAcrossBatch(t *testing.T) {
	contents := []extract.ExtractedContent{
		{
			Locations: []extract.Location{{Name: "西湖", Type: extract.LocationLandmark}},
			Stats:     extract.Stats{Likes: 1000, Comments: 200, Shares: 100},
		},
		{
			Locations: []extract.Location{
				{Name: "西湖", Address: "杭州市西湖区", Type: extract.LocationLandmark},
				{Name: "灵隐寺", Type: extract.LocationLandmark},
			},
			Stats: extract.Stats{Likes: 500, Comments: 100, Shares: 50},
		},
	}

	insights := LocationInsights(contents)
	require.Len(t, insights, 2)

	xihu := insights[0]
	require.Equal(t, "西湖", xihu.Name)
	require.Equal(t, 2, xihu.MentionedCount)
	// Address back-fills from the later mention.
	require.Equal(t, "杭州市西湖区", xihu.Address)

	// likes*0.3 + comments*0.5 + shares*0.2 per source, averaged over the two
	// mentions, plus the extra-mention bonus:
	// ((1000*0.3+200*0.5+100*0.2) + (500*0.3+100*0.5+50*0.2)) / 2 / 100 + 5
	require.InDelta(t, 8.15, xihu.PopularityScore, 0.001)

	require.Equal(t, "灵隐寺", insights[1].Name)
	require.Equal(t, 1, insights[1].MentionedCount)
}

func TestActivityInsightsWeights(t *testing.T) {
	contents := []extract.ExtractedContent{
		{
			Activities: []extract.Activity{{Name: "环湖骑行", Category: extract.ActivityNature, Cost: 30, Tips: "清晨人少"}},
			Stats:      extract.Stats{Likes: 2000, Comments: 500, Shares: 100},
		},
	}

	insights := ActivityInsights(contents)
	require.Len(t, insights, 1)

	ride := insights[0]
	require.Equal(t, "环湖骑行", ride.Name)
	require.Equal(t, 1, ride.MentionedCount)
	require.Equal(t, 30.0, ride.EstimatedCost)
	require.Equal(t, []string{"清晨人少"}, ride.Tips)
	// likes*0.4 + comments*0.4 + shares*0.2 = 1020, /1 mention /100
	require.InDelta(t, 10.2, ride.PopularityScore, 0.001)
}

func TestPopularityScoreCapped(t *testing.T) {
	contents := []extract.ExtractedContent{{
		Locations: []extract.Location{{Name: "故宫"}},
		Stats:     extract.Stats{Likes: 10_000_000, Comments: 1_000_000, Shares: 500_000},
	}}

	insights := LocationInsights(contents)
	require.Equal(t, 100.0, insights[0].PopularityScore)
}

func TestInsightsEmptyBatch(t *testing.T) {
	require.Empty(t, LocationInsights(nil))
	require.Empty(t, ActivityInsights(nil))
}
