package analyze

import "tripcraft/internal/extract"

// Engagement weights differ between locations and activities: comment volume
// signals more about a place, while likes and comments weigh equally for
// things to do.
const (
	locationLikeWeight    = 0.3
	locationCommentWeight = 0.5
	locationShareWeight   = 0.2

	activityLikeWeight    = 0.4
	activityCommentWeight = 0.4
	activityShareWeight   = 0.2

	mentionBonus = 5.0
)

// LocationInsights merges same-named locations across the batch without any
// LLM involvement. Used standalone and as the fallback when model analysis
// is unavailable.
func LocationInsights(contents []extract.ExtractedContent) []LocationInsight {
	type accum struct {
		insight LocationInsight
		raw     float64
	}
	byName := make(map[string]*accum)
	var order []string

	for _, c := range contents {
		engagement := float64(c.Stats.Likes)*locationLikeWeight +
			float64(c.Stats.Comments)*locationCommentWeight +
			float64(c.Stats.Shares)*locationShareWeight

		for _, loc := range c.Locations {
			entry, ok := byName[loc.Name]
			if !ok {
				entry = &accum{insight: LocationInsight{
					Name:        loc.Name,
					Type:        string(loc.Type),
					Address:     loc.Address,
					Coordinates: loc.Coordinates,
				}}
				byName[loc.Name] = entry
				order = append(order, loc.Name)
			}
			entry.insight.MentionedCount++
			entry.raw += engagement
			if entry.insight.Address == "" {
				entry.insight.Address = loc.Address
			}
			if entry.insight.Coordinates == nil {
				entry.insight.Coordinates = loc.Coordinates
			}
		}
	}

	insights := make([]LocationInsight, 0, len(order))
	for _, name := range order {
		entry := byName[name]
		entry.insight.PopularityScore = popularityScore(entry.raw, entry.insight.MentionedCount)
		insights = append(insights, entry.insight)
	}
	return insights
}

// ActivityInsights merges same-named activities across the batch.
func ActivityInsights(contents []extract.ExtractedContent) []ActivityInsight {
	type accum struct {
		insight ActivityInsight
		raw     float64
	}
	byName := make(map[string]*accum)
	var order []string

	for _, c := range contents {
		engagement := float64(c.Stats.Likes)*activityLikeWeight +
			float64(c.Stats.Comments)*activityCommentWeight +
			float64(c.Stats.Shares)*activityShareWeight

		for _, act := range c.Activities {
			entry, ok := byName[act.Name]
			if !ok {
				entry = &accum{insight: ActivityInsight{
					Name:          act.Name,
					Category:      string(act.Category),
					Description:   act.Description,
					EstimatedCost: act.Cost,
				}}
				if act.Tips != "" {
					entry.insight.Tips = []string{act.Tips}
				}
				byName[act.Name] = entry
				order = append(order, act.Name)
			}
			entry.insight.MentionedCount++
			entry.raw += engagement
		}
	}

	insights := make([]ActivityInsight, 0, len(order))
	for _, name := range order {
		entry := byName[name]
		entry.insight.PopularityScore = popularityScore(entry.raw, entry.insight.MentionedCount)
		insights = append(insights, entry.insight)
	}
	return insights
}

// popularityScore normalizes aggregate engagement by mention count, adds a
// per-extra-mention bonus, and caps at 100.
func popularityScore(rawEngagement float64, mentions int) float64 {
	if mentions < 1 {
		mentions = 1
	}
	score := rawEngagement / float64(mentions) / 100
	score += float64(mentions-1) * mentionBonus
	return clampScore(score)
}
