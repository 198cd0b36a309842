package extract

import (
	"regexp"

	"tripcraft/internal/browser"
	"tripcraft/internal/observability"
)

var bilibiliURLPattern = regexp.MustCompile(`^https?://(www\.|m\.)?(bilibili\.com|b23\.tv)/`)

// BilibiliExtractor scrapes video pages from Bilibili.
type BilibiliExtractor struct {
	platformExtractor
}

func NewBilibiliExtractor(svc *browser.Service, policy Policy, metrics *observability.Metrics) *BilibiliExtractor {
	e := &BilibiliExtractor{newPlatformExtractor(PlatformBilibili, svc, policy, metrics)}
	e.urlPattern = bilibiliURLPattern
	e.homeURL = "https://www.bilibili.com"
	e.selectors = fieldSelectors{
		ready:       []string{".video-info-title", "h1.video-title", "#viewbox_report"},
		title:       []string{".video-info-title h1", "h1.video-title", "#viewbox_report h1", "h1[title]"},
		description: []string{".basic-desc-info", ".desc-info-text", "#v_desc .desc-info", ".video-desc"},
		author:      []string{".up-name", ".up-info .name", "a.up-name"},
		avatar:      []string{".up-avatar img", ".up-info img"},
		likes:       []string{".video-like-info", ".like .info-text", ".ops .like"},
		comments:    []string{".total-reply", ".reply-count", ".video-reply-info"},
		shares:      []string{".video-share-info", ".share .info-text", ".ops .share"},
		tags:        []string{".tag-link", ".video-tag-link", ".tag .tag-link"},
		thumbnail:   []string{"meta[itemprop='image']", ".video-cover img"},
		duration:    []string{".bpx-player-ctrl-time-duration", ".video-time-total", ".bilibili-player-video-time-total"},
	}
	e.mock = bilibiliMock
	return e
}

func bilibiliMock(url string) *ExtractedContent {
	return &ExtractedContent{
		Title:            "【东京旅行VLOG】5天4夜深度游，含富士山一日游路线",
		Description:      "这次东京之行去了浅草寺、涩谷、新宿、秋叶原，专门安排了一天河口湖看富士山。视频里有详细的交通卡购买攻略和居酒屋推荐，总花费约8000元人民币。",
		Platform:         PlatformBilibili,
		URL:              url,
		VideoDurationSec: 1154,
		Locations: []Location{
			{Name: "东京", Type: LocationCity},
			{Name: "浅草寺", Address: "東京都台東区浅草2-3-1", Type: LocationLandmark},
			{Name: "富士山", Type: LocationLandmark},
			{Name: "涩谷", Type: LocationDistrict},
		},
		Activities: []Activity{
			{Name: "浅草寺参拜", Description: "东京最古老的寺庙，雷门打卡", Category: ActivityCulture, DurationMin: 120, Tips: "早上人少"},
			{Name: "河口湖看富士山", Description: "天气好时湖面有逆富士", Category: ActivityNature, Cost: 350, DurationMin: 480},
			{Name: "居酒屋体验", Description: "新宿思い出横丁", Category: ActivityFood, Cost: 200, DurationMin: 120},
		},
		Media: []Media{
			{Type: MediaVideo, URL: "https://i2.hdslb.com/mock-cover-tokyo.jpg"},
		},
		Tags:   []string{"东京旅行", "日本", "VLOG", "富士山", "旅行攻略"},
		Author: Author{Name: "环球旅行日记", Avatar: "https://i2.hdslb.com/mock-face.jpg"},
		Stats:  Stats{Likes: 45000, Comments: 3200, Shares: 8900},
	}
}
