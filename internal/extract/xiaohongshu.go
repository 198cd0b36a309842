package extract

import (
	"regexp"

	"tripcraft/internal/browser"
	"tripcraft/internal/observability"
)

var xiaohongshuURLPattern = regexp.MustCompile(`^https?://(www\.)?(xiaohongshu\.com|xhslink\.com)/`)

// XiaohongshuExtractor scrapes note pages from Xiaohongshu.
type XiaohongshuExtractor struct {
	platformExtractor
}

func NewXiaohongshuExtractor(svc *browser.Service, policy Policy, metrics *observability.Metrics) *XiaohongshuExtractor {
	e := &XiaohongshuExtractor{newPlatformExtractor(PlatformXiaohongshu, svc, policy, metrics)}
	e.urlPattern = xiaohongshuURLPattern
	e.homeURL = "https://www.xiaohongshu.com"
	e.selectors = fieldSelectors{
		ready:       []string{".note-container", "#detail-title", ".note-content"},
		title:       []string{"#detail-title", ".note-container .title", "h1.title", ".note-top .title"},
		description: []string{"#detail-desc", ".note-content .desc", ".note-container .desc", ".content .desc"},
		author:      []string{".author-container .username", ".info .name", ".author .name"},
		avatar:      []string{".author-container .avatar-item", ".avatar img", ".author img"},
		likes:       []string{".like-wrapper .count", ".engage-bar .like-wrapper span", ".interactions .like .count"},
		comments:    []string{".chat-wrapper .count", ".comment-wrapper .count", ".interactions .comment .count"},
		shares:      []string{".collect-wrapper .count", ".share-wrapper .count", ".interactions .collect .count"},
		tags:        []string{".note-content .tag", "#hash-tag", "a.tag"},
		thumbnail:   []string{".note-slider img", ".carousel img", ".media-container img"},
	}
	e.mock = xiaohongshuMock
	return e
}

// xiaohongshuMock is the canned payload returned whenever scraping is
// disabled or fails.
func xiaohongshuMock(url string) *ExtractedContent {
	return &ExtractedContent{
		Title:       "成都3天2夜超全攻略！人均800玩转春熙路",
		Description: "第一天：春熙路-太古里-IFS网红熊猫打卡，晚上吃龙抄手总店。第二天：熊猫基地一定要早上去！下午宽窄巷子喝盖碗茶，晚上九眼桥夜景。第三天：武侯祠+锦里，必吃三大炮和糖油果子，人均消费800元左右。",
		Platform:    PlatformXiaohongshu,
		URL:         url,
		Locations: []Location{
			{Name: "成都", Type: LocationCity},
			{Name: "春熙路", Type: LocationDistrict},
			{Name: "宽窄巷子", Type: LocationLandmark},
			{Name: "熊猫基地", Address: "成都市成华区熊猫大道1375号", Type: LocationLandmark},
			{Name: "武侯祠", Address: "成都市武侯区武侯祠大街231号", Type: LocationLandmark},
		},
		Activities: []Activity{
			{Name: "熊猫基地看大熊猫", Description: "早上8点前到，熊猫最活跃", Category: ActivityNature, Cost: 55, DurationMin: 180, Tips: "提前在公众号购票"},
			{Name: "宽窄巷子喝盖碗茶", Description: "体验成都慢生活", Category: ActivityCulture, Cost: 48, DurationMin: 120},
			{Name: "品尝龙抄手", Description: "春熙路总店", Category: ActivityFood, Cost: 60, DurationMin: 90},
		},
		Media: []Media{
			{Type: MediaImage, URL: "https://ci.xiaohongshu.com/mock-cover-chengdu.webp"},
		},
		Tags:   []string{"成都旅游", "成都攻略", "美食", "大熊猫", "3天2夜"},
		Author: Author{Name: "爱旅行的桃子", Avatar: "https://ci.xiaohongshu.com/mock-avatar.webp"},
		Stats:  Stats{Likes: 12000, Comments: 856, Shares: 2300},
	}
}
