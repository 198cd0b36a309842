package plan

import "time"

// ActivityType drives time-slot durations and budget bucketing.
type ActivityType string

const (
	ActivityAttraction ActivityType = "ATTRACTION"
	ActivityRestaurant ActivityType = "RESTAURANT"
	ActivityHotel      ActivityType = "HOTEL"
	ActivityTransport  ActivityType = "TRANSPORT"
	ActivityGeneric    ActivityType = "ACTIVITY"
)

// UserRequirements is supplied by the caller. The generator works on a copy;
// the caller's value is never mutated.
type UserRequirements struct {
	DurationDays        int      `json:"durationDays"`
	Travelers           int      `json:"travelers"`
	Budget              float64  `json:"budget,omitempty"`
	TravelStyle         []string `json:"travelStyle,omitempty"`
	Interests           []string `json:"interests,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	AccessibilityNeeds  []string `json:"accessibilityNeeds,omitempty"`
	FreeText            string   `json:"freeText,omitempty"`
}

// ActivityLocation pins an activity to a place. Coordinates are [lat, lon]
// and optional.
type ActivityLocation struct {
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Coordinates *[2]float64 `json:"coordinates,omitempty"`
}

// TravelActivity is a scheduled item within a day. Order is 1-based and
// always matches the activity's position in its day.
type TravelActivity struct {
	ID            string           `json:"id"`
	Order         int              `json:"order"`
	StartTime     string           `json:"startTime"` // "HH:MM"
	EndTime       string           `json:"endTime"`
	Type          ActivityType     `json:"type"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Location      ActivityLocation `json:"location"`
	EstimatedCost float64          `json:"estimatedCost"`
	Tips          []string         `json:"tips,omitempty"`
}

// DailySummary is recomputed whenever a day's activities change.
type DailySummary struct {
	TotalCost         float64  `json:"totalCost"`
	WalkingDistanceKm float64  `json:"walkingDistanceKm"`
	Highlights        []string `json:"highlights,omitempty"`
}

// TravelDay is one day of the itinerary. DayNumber always equals the day's
// index in the plan plus one.
type TravelDay struct {
	DayNumber    int              `json:"dayNumber"`
	Date         string           `json:"date,omitempty"`
	Title        string           `json:"title"`
	Theme        string           `json:"theme,omitempty"`
	Weather      string           `json:"weather,omitempty"`
	Activities   []TravelActivity `json:"activities"`
	DailySummary DailySummary     `json:"dailySummary"`
}

// BudgetBreakdown splits the estimate four ways.
type BudgetBreakdown struct {
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
}

// Budget is a crude uncertainty band around the raw cost sum: min is 80%,
// max is 120%.
type Budget struct {
	Min       float64         `json:"min"`
	Max       float64         `json:"max"`
	Breakdown BudgetBreakdown `json:"breakdown"`
}

// FlightOption is a mocked flight search result with a provider deep link.
type FlightOption struct {
	ID            string  `json:"id"`
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
	DeepLink      string  `json:"deepLink"`
}

// HotelOption is a mocked hotel search result with a provider deep link.
type HotelOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Rating        float64 `json:"rating"`
	PricePerNight float64 `json:"pricePerNight"`
	DeepLink      string  `json:"deepLink"`
}

// TravelPlan is the generation output. ID, NoteID, CreatedAt belong to the
// caller's persistence layer; the generator only preserves them through
// adjustment.
type TravelPlan struct {
	ID              string         `json:"id,omitempty"`
	NoteID          string         `json:"noteId,omitempty"`
	Title           string         `json:"title"`
	Destination     string         `json:"destination"`
	TotalDays       int            `json:"totalDays"`
	Travelers       int            `json:"travelers,omitempty"`
	EstimatedBudget Budget         `json:"estimatedBudget"`
	Days            []TravelDay    `json:"days"`
	Flights         []FlightOption `json:"flights,omitempty"`
	Hotels          []HotelOption  `json:"hotels,omitempty"`
	CreatedAt       time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       time.Time      `json:"updatedAt,omitempty"`
}

// Command is a parsed free-text instruction, used by conversational surfaces.
type Command struct {
	Action     string         `json:"action"`
	Target     string         `json:"target,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}
