package plan

import (
	"fmt"
	"math"
)

// DistanceMetric measures distance between two [lat, lon] points. The unit
// does not matter to the route ordering, only relative magnitude.
type DistanceMetric interface {
	Distance(a, b [2]float64) float64
}

// EuclideanDistance works on raw lat/lon degrees. Not a geodesic formula —
// an accepted simplification for short-hop itinerary ordering.
type EuclideanDistance struct{}

func (EuclideanDistance) Distance(a, b [2]float64) float64 {
	dLat := a[0] - b[0]
	dLon := a[1] - b[1]
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// HaversineDistance returns great-circle distance in kilometers, for callers
// that want real geography.
type HaversineDistance struct{}

const earthRadiusKm = 6371.0

func (HaversineDistance) Distance(a, b [2]float64) float64 {
	lat1 := a[0] * math.Pi / 180
	lat2 := b[0] * math.Pi / 180
	dLat := (b[0] - a[0]) * math.Pi / 180
	dLon := (b[1] - a[1]) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// OptimizeRoute orders activities as a greedy nearest-neighbor tour starting
// from start (or the first activity's location when start is nil). The output
// is a permutation of the input; activities without coordinates keep their
// relative order at the end. Order fields are re-sequenced 1..N.
func OptimizeRoute(activities []TravelActivity, start *[2]float64, metric DistanceMetric) []TravelActivity {
	if metric == nil {
		metric = EuclideanDistance{}
	}
	if len(activities) <= 1 {
		return resequence(append([]TravelActivity(nil), activities...))
	}

	var located, unlocated []TravelActivity
	for _, a := range activities {
		if a.Location.Coordinates != nil {
			located = append(located, a)
		} else {
			unlocated = append(unlocated, a)
		}
	}

	ordered := make([]TravelActivity, 0, len(activities))
	if len(located) > 0 {
		current := *located[0].Location.Coordinates
		if start != nil {
			current = *start
		}

		remaining := located
		for len(remaining) > 0 {
			best := 0
			bestDist := math.Inf(1)
			for i, a := range remaining {
				if d := metric.Distance(current, *a.Location.Coordinates); d < bestDist {
					best = i
					bestDist = d
				}
			}
			next := remaining[best]
			ordered = append(ordered, next)
			current = *next.Location.Coordinates
			remaining = append(remaining[:best], remaining[best+1:]...)
		}
	}
	ordered = append(ordered, unlocated...)

	return resequence(ordered)
}

func resequence(activities []TravelActivity) []TravelActivity {
	for i := range activities {
		activities[i].Order = i + 1
	}
	return activities
}

// Per-type durations in minutes for sequential scheduling.
var activityDurations = map[ActivityType]int{
	ActivityAttraction: 180,
	ActivityRestaurant: 90,
	ActivityHotel:      60,
	ActivityTransport:  30,
	ActivityGeneric:    120,
}

const (
	dayStartHour     = 9
	defaultDuration  = 120 // minutes, for unknown activity types
	transitionBuffer = 30  // minutes between consecutive activities
)

// OptimizeTimeSchedule assigns sequential time slots: the first activity
// starts at 09:00, each runs for its type's duration, and a fixed 30-minute
// buffer separates consecutive activities.
func OptimizeTimeSchedule(activities []TravelActivity) []TravelActivity {
	scheduled := append([]TravelActivity(nil), activities...)

	cursor := dayStartHour * 60
	for i := range scheduled {
		duration, ok := activityDurations[scheduled[i].Type]
		if !ok {
			duration = defaultDuration
		}
		scheduled[i].StartTime = formatMinutes(cursor)
		cursor += duration
		scheduled[i].EndTime = formatMinutes(cursor)
		cursor += transitionBuffer
	}
	return scheduled
}

func formatMinutes(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", (totalMinutes/60)%24, totalMinutes%60)
}

// walkingDistanceKm estimates the day's on-foot distance as the haversine
// path length through all located activities.
func walkingDistanceKm(activities []TravelActivity) float64 {
	metric := HaversineDistance{}
	var total float64
	var prev *[2]float64
	for _, a := range activities {
		if a.Location.Coordinates == nil {
			continue
		}
		if prev != nil {
			total += metric.Distance(*prev, *a.Location.Coordinates)
		}
		prev = a.Location.Coordinates
	}
	return math.Round(total*10) / 10
}
