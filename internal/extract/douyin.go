package extract

import (
	"regexp"

	"tripcraft/internal/browser"
	"tripcraft/internal/observability"
)

var douyinURLPattern = regexp.MustCompile(`^https?://(www\.|v\.)?(douyin\.com|iesdouyin\.com)/`)

// DouyinExtractor scrapes short-video pages from Douyin.
type DouyinExtractor struct {
	platformExtractor
}

func NewDouyinExtractor(svc *browser.Service, policy Policy, metrics *observability.Metrics) *DouyinExtractor {
	e := &DouyinExtractor{newPlatformExtractor(PlatformDouyin, svc, policy, metrics)}
	e.urlPattern = douyinURLPattern
	e.homeURL = "https://www.douyin.com"
	e.selectors = fieldSelectors{
		ready:       []string{"[data-e2e='video-desc']", ".video-info-detail", "#video-info-wrap"},
		title:       []string{"[data-e2e='video-desc']", ".video-info-detail .title", "#video-info-wrap .title"},
		description: []string{"[data-e2e='video-desc']", ".video-info-detail .desc"},
		author:      []string{"[data-e2e='user-name']", ".author-card .name", ".account-name"},
		avatar:      []string{"[data-e2e='user-avatar'] img", ".author-card img"},
		likes:       []string{"[data-e2e='video-digg-count']", ".digg-count", ".like-count"},
		comments:    []string{"[data-e2e='video-comment-count']", ".comment-count"},
		shares:      []string{"[data-e2e='video-share-count']", ".share-count"},
		tags:        []string{"[data-e2e='video-tag']", "a.hashtag", ".tag-item"},
		thumbnail:   []string{"[data-e2e='video-cover'] img", ".video-cover img", "video[poster]"},
		duration:    []string{".time-duration", ".xgplayer-time-duration", "[data-e2e='video-time-duration']"},
	}
	e.mock = douyinMock
	return e
}

func douyinMock(url string) *ExtractedContent {
	return &ExtractedContent{
		Title:            "三亚旅行必看！这5个海滩真的绝了 #三亚 #海岛游",
		Description:      "亚龙湾的水最清，蜈支洲岛适合潜水，后海村可以学冲浪，太阳湾人少景美，天涯海角日落超出片！住宿推荐海棠湾，吃海鲜去第一市场加工店。",
		Platform:         PlatformDouyin,
		URL:              url,
		VideoDurationSec: 58,
		Locations: []Location{
			{Name: "三亚", Type: LocationCity},
			{Name: "亚龙湾", Type: LocationLandmark},
			{Name: "蜈支洲岛", Type: LocationLandmark},
			{Name: "后海村", Type: LocationDistrict},
		},
		Activities: []Activity{
			{Name: "蜈支洲岛潜水", Description: "水质清澈，适合新手", Category: ActivityNature, Cost: 580, DurationMin: 240, Tips: "提前订票便宜100元"},
			{Name: "后海村学冲浪", Description: "冲浪俱乐部一对一教学", Category: ActivityEntertainment, Cost: 300, DurationMin: 120},
			{Name: "第一市场吃海鲜", Description: "自选海鲜找加工店", Category: ActivityFood, Cost: 150, DurationMin: 90},
		},
		Media: []Media{
			{Type: MediaVideo, URL: "https://p3-sign.douyinpic.com/mock-cover-sanya.jpeg"},
		},
		Tags:   []string{"三亚", "海岛游", "旅行", "海滩", "潜水"},
		Author: Author{Name: "阿浪的环岛日记", Avatar: "https://p3-sign.douyinpic.com/mock-avatar.jpeg"},
		Stats:  Stats{Likes: 230000, Comments: 12000, Shares: 45000},
	}
}
