// Package extract turns source URLs from content platforms into structured
// travel information.
package extract

import "fmt"

// Platform identifies a supported content platform.
type Platform string

const (
	PlatformXiaohongshu Platform = "XIAOHONGSHU"
	PlatformBilibili    Platform = "BILIBILI"
	PlatformDouyin      Platform = "DOUYIN"
	PlatformMafengwo    Platform = "MAFENGWO"
)

// SupportedPlatforms lists every platform an extractor exists for, in
// display order.
func SupportedPlatforms() []Platform {
	return []Platform{PlatformXiaohongshu, PlatformBilibili, PlatformDouyin, PlatformMafengwo}
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformXiaohongshu, PlatformBilibili, PlatformDouyin, PlatformMafengwo:
		return true
	}
	return false
}

// LocationType categorizes an extracted location.
type LocationType string

const (
	LocationCity       LocationType = "city"
	LocationDistrict   LocationType = "district"
	LocationLandmark   LocationType = "landmark"
	LocationRestaurant LocationType = "restaurant"
	LocationHotel      LocationType = "hotel"
)

// Location is a place mentioned in source content. Coordinates are optional;
// most posts never carry them.
type Location struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Coordinates *[2]float64  `json:"coordinates,omitempty"` // [lat, lon]
	Type        LocationType `json:"type"`
}

// ActivityCategory buckets extracted activities.
type ActivityCategory string

const (
	ActivityFood          ActivityCategory = "food"
	ActivityShopping      ActivityCategory = "shopping"
	ActivityCulture       ActivityCategory = "culture"
	ActivityNature        ActivityCategory = "nature"
	ActivityEntertainment ActivityCategory = "entertainment"
	ActivityPhotography   ActivityCategory = "photography"
)

// Activity is something to do, derived from source content.
type Activity struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    ActivityCategory `json:"category"`
	Cost        float64          `json:"cost,omitempty"`
	DurationMin int              `json:"duration_min,omitempty"`
	Tips        string           `json:"tips,omitempty"`
}

// MediaType distinguishes media references.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media references an image or video attached to the source content.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

// Author is the content creator.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Stats holds engagement counts. Values are absolute, already expanded from
// platform shorthand ("1.2万" → 12000).
type Stats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// ExtractedContent is the structured result of extracting one source URL.
// It is a value object: created once by an extractor, never mutated after.
// VideoDurationSec is only set by the video platforms, expanded from the
// player's "HH:MM:SS"/"MM:SS" display.
type ExtractedContent struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Platform         Platform   `json:"platform"`
	URL              string     `json:"url"`
	VideoDurationSec int        `json:"video_duration_sec,omitempty"`
	Locations        []Location `json:"locations"`
	Activities       []Activity `json:"activities"`
	Media            []Media    `json:"media"`
	Tags             []string   `json:"tags"`
	Author           Author     `json:"author"`
	Stats            Stats      `json:"stats"`
}

// Result is the per-URL outcome of an extraction request.
type Result struct {
	Success  bool              `json:"success"`
	Data     *ExtractedContent `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Platform Platform          `json:"platform,omitempty"`
	URL      string            `json:"url"`
}

// ErrUnsupportedPlatform is returned verbatim to API clients, hence the
// user-facing Chinese message.
var ErrUnsupportedPlatform = fmt.Errorf("不支持的平台或无效的URL")
