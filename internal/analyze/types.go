package analyze

// AnalysisResult aggregates insights over one extraction batch. Produced once
// per generation request and not persisted.
type AnalysisResult struct {
	Locations       []LocationInsight `json:"locations"`
	Activities      []ActivityInsight `json:"activities"`
	Themes          []string          `json:"themes"`
	QualityScore    float64           `json:"quality_score"`
	Recommendations []string          `json:"recommendations"`
	Sentiment       SentimentAnalysis `json:"sentiment"`
	TravelInsights  TravelInsights    `json:"travel_insights"`
}

// LocationInsight is a deduplicated location with aggregate popularity.
type LocationInsight struct {
	Name            string      `json:"name"`
	Type            string      `json:"type,omitempty"`
	Address         string      `json:"address,omitempty"`
	Coordinates     *[2]float64 `json:"coordinates,omitempty"`
	MentionedCount  int         `json:"mentioned_count"`
	PopularityScore float64     `json:"popularity_score"`
}

// ActivityInsight is a deduplicated activity with aggregate popularity.
type ActivityInsight struct {
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	EstimatedCost   float64  `json:"estimated_cost,omitempty"`
	Tips            []string `json:"tips,omitempty"`
	MentionedCount  int      `json:"mentioned_count"`
	PopularityScore float64  `json:"popularity_score"`
}

// SentimentAnalysis captures the overall tone of the source material.
type SentimentAnalysis struct {
	Overall    string   `json:"overall"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
	Concerns   []string `json:"concerns,omitempty"`
}

// TravelInsights summarizes what kind of trip the sources describe.
type TravelInsights struct {
	DestinationType    string   `json:"destination_type"`
	TravelStyle        []string `json:"travel_style"`
	BudgetLevel        string   `json:"budget_level"`
	MinRecommendedDays int      `json:"min_recommended_days"`
	MaxRecommendedDays int      `json:"max_recommended_days"`
}

// QualityReport scores a single extracted item. All scores are 0-100.
type QualityReport struct {
	QualityScore      float64  `json:"quality_score"`
	RelevanceScore    float64  `json:"relevance_score"`
	CompletenessScore float64  `json:"completeness_score"`
	Issues            []string `json:"issues,omitempty"`
	Suggestions       []string `json:"suggestions,omitempty"`
}

// neutralQualityReport is what single-item analysis degrades to on any
// failure. Batch analysis surfaces errors instead; the asymmetry is
// intentional — quality scoring is advisory, batch insights are load-bearing.
func neutralQualityReport() QualityReport {
	return QualityReport{
		QualityScore:      50,
		RelevanceScore:    50,
		CompletenessScore: 50,
	}
}
