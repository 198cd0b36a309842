package extract

import (
	"regexp"

	"tripcraft/internal/browser"
	"tripcraft/internal/observability"
)

var mafengwoURLPattern = regexp.MustCompile(`^https?://(www\.|m\.)?mafengwo\.cn/`)

// MafengwoExtractor scrapes long-form travelogue pages from Mafengwo. These
// pages lazy-load sections, so a scroll pass runs before the snapshot.
type MafengwoExtractor struct {
	platformExtractor
}

func NewMafengwoExtractor(svc *browser.Service, policy Policy, metrics *observability.Metrics) *MafengwoExtractor {
	e := &MafengwoExtractor{newPlatformExtractor(PlatformMafengwo, svc, policy, metrics)}
	e.urlPattern = mafengwoURLPattern
	e.homeURL = "https://www.mafengwo.cn"
	e.scroll = true
	e.selectors = fieldSelectors{
		ready:       []string{".vi_con", ".post-title", "#pnl_contentinfo"},
		title:       []string{"h1.headtext", ".post-title h1", ".vi_con h1", "h1"},
		description: []string{".vi_con ._j_content_box", "#pnl_contentinfo", ".post-content", "._j_content_box"},
		author:      []string{".per_name", ".user-name a", ".vi_author .name"},
		avatar:      []string{".per_pic img", ".user-avatar img"},
		likes:       []string{".btn-ding span", ".vote-count", ".ding_num"},
		comments:    []string{".num_reply", ".comment-count", "#comment_num"},
		shares:      []string{".btn-share span", ".share-count"},
		tags:        []string{".vi_con .tags a", ".post-tags a"},
		thumbnail:   []string{".vi_con img", ".post-content img"},
	}
	e.mock = mafengwoMock
	return e
}

func mafengwoMock(url string) *ExtractedContent {
	return &ExtractedContent{
		Title:       "大理洱海七日慢游记：环湖骑行、古城觅食与苍山徒步",
		Description: "在大理待了整整一周。前两天住大理古城，逛人民路和洋人街；第三天租电动车环洱海，喜洲古镇的破酥粑粑一定要吃；第四天双廊看海景；第五天苍山洗马潭索道徒步；最后两天在才村码头发呆看日出。全程人均2500元，强烈推荐淡季来。",
		Platform:    PlatformMafengwo,
		URL:         url,
		Locations: []Location{
			{Name: "大理", Type: LocationCity},
			{Name: "大理古城", Type: LocationLandmark},
			{Name: "洱海", Type: LocationLandmark},
			{Name: "喜洲古镇", Type: LocationDistrict},
			{Name: "苍山", Coordinates: &[2]float64{25.66, 100.10}, Type: LocationLandmark},
		},
		Activities: []Activity{
			{Name: "环洱海骑行", Description: "电动车一天约60元，逆时针风景更好", Category: ActivityNature, Cost: 60, DurationMin: 360, Tips: "防晒必备"},
			{Name: "喜洲古镇觅食", Description: "破酥粑粑和喜洲鱼", Category: ActivityFood, Cost: 80, DurationMin: 150},
			{Name: "苍山洗马潭徒步", Description: "索道上山后沿步道徒步", Category: ActivityNature, Cost: 280, DurationMin: 300},
			{Name: "古城逛街拍照", Description: "人民路的文艺小店", Category: ActivityPhotography, DurationMin: 180},
		},
		Media: []Media{
			{Type: MediaImage, URL: "https://p1-q.mafengwo.net/mock-cover-dali.jpeg"},
		},
		Tags:   []string{"大理", "洱海", "云南", "慢旅行", "骑行"},
		Author: Author{Name: "山野慢行者", Avatar: "https://p1-q.mafengwo.net/mock-avatar.jpeg"},
		Stats:  Stats{Likes: 8600, Comments: 542, Shares: 1200},
	}
}
