package extract

import (
	"regexp"
	"strings"
)

// gazetteer is the fixed list of well-known destinations matched against
// description text. Keys are the matched fragment; values the location type.
var gazetteer = []struct {
	name string
	typ  LocationType
}{
	// Chinese cities
	{"北京", LocationCity}, {"上海", LocationCity}, {"广州", LocationCity},
	{"深圳", LocationCity}, {"成都", LocationCity}, {"重庆", LocationCity},
	{"杭州", LocationCity}, {"西安", LocationCity}, {"南京", LocationCity},
	{"武汉", LocationCity}, {"长沙", LocationCity}, {"厦门", LocationCity},
	{"青岛", LocationCity}, {"大理", LocationCity}, {"丽江", LocationCity},
	{"三亚", LocationCity}, {"拉萨", LocationCity}, {"昆明", LocationCity},
	{"桂林", LocationCity}, {"哈尔滨", LocationCity},
	// Japanese and Korean cities
	{"东京", LocationCity}, {"京都", LocationCity}, {"大阪", LocationCity},
	{"奈良", LocationCity}, {"北海道", LocationCity}, {"冲绳", LocationCity},
	{"首尔", LocationCity}, {"釜山", LocationCity}, {"济州岛", LocationCity},
	// Southeast Asia and western cities
	{"曼谷", LocationCity}, {"清迈", LocationCity}, {"普吉岛", LocationCity},
	{"新加坡", LocationCity}, {"巴厘岛", LocationCity}, {"吉隆坡", LocationCity},
	{"巴黎", LocationCity}, {"伦敦", LocationCity}, {"纽约", LocationCity},
	{"罗马", LocationCity}, {"悉尼", LocationCity},
	// Landmarks
	{"故宫", LocationLandmark}, {"长城", LocationLandmark}, {"外滩", LocationLandmark},
	{"西湖", LocationLandmark}, {"兵马俑", LocationLandmark}, {"迪士尼", LocationLandmark},
	{"环球影城", LocationLandmark}, {"富士山", LocationLandmark},
	{"浅草寺", LocationLandmark}, {"清水寺", LocationLandmark},
	{"埃菲尔铁塔", LocationLandmark}, {"卢浮宫", LocationLandmark},
}

// adminSuffixPattern matches Chinese administrative place names by suffix
// (……市 / 区 / 县 / 镇 / 村).
var adminSuffixPattern = regexp.MustCompile(`[\p{Han}]{1,6}(?:市|区|县|镇|古镇|古城)`)

// DeriveLocations scans text for gazetteer entries and administrative-suffix
// matches, deduplicated in first-seen order.
func DeriveLocations(text string) []Location {
	seen := make(map[string]bool)
	var locations []Location

	for _, entry := range gazetteer {
		if strings.Contains(text, entry.name) && !seen[entry.name] {
			seen[entry.name] = true
			locations = append(locations, Location{Name: entry.name, Type: entry.typ})
		}
	}

	for _, match := range adminSuffixPattern.FindAllString(text, -1) {
		if !seen[match] {
			seen[match] = true
			locations = append(locations, Location{Name: match, Type: LocationDistrict})
		}
	}

	return locations
}

// activityKeywords maps trigger keywords to the synthetic activity emitted
// when the keyword appears in text or tags.
var activityKeywords = []struct {
	keywords []string
	name     string
	category ActivityCategory
}{
	{[]string{"美食", "餐厅", "小吃", "必吃", "火锅", "探店"}, "品尝当地美食", ActivityFood},
	{[]string{"购物", "商场", "免税", "买买买", "伴手礼"}, "逛街购物", ActivityShopping},
	{[]string{"博物馆", "寺庙", "古迹", "历史", "文化", "展览"}, "文化历史景点游览", ActivityCulture},
	{[]string{"爬山", "徒步", "海滩", "公园", "日出", "日落", "风景"}, "自然风光游览", ActivityNature},
	{[]string{"酒吧", "夜市", "演出", "乐园", "温泉"}, "休闲娱乐体验", ActivityEntertainment},
	{[]string{"拍照", "打卡", "出片", "机位"}, "网红打卡拍照", ActivityPhotography},
}

// DeriveActivities emits one synthetic activity per matched keyword group.
func DeriveActivities(text string, tags []string) []Activity {
	haystack := text + " " + strings.Join(tags, " ")

	var activities []Activity
	for _, group := range activityKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(haystack, kw) {
				activities = append(activities, Activity{
					Name:        group.name,
					Description: "根据内容提到的\"" + kw + "\"推荐",
					Category:    group.category,
				})
				break
			}
		}
	}
	return activities
}
