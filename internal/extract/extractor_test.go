package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"tripcraft/internal/config"
)

const xiaohongshuNoteHTML = `
<html><body>
  <div class="note-container">
    <h1 id="detail-title">大理洱海两日骑行路线</h1>
    <div id="detail-desc">环洱海骑行，路过喜洲古镇吃破酥粑粑，日落时分在海西拍照打卡。</div>
    <div class="author-container">
      <span class="username">骑行的阿黎</span>
      <img class="avatar-item" src="https://ci.example.com/avatar.webp"/>
    </div>
    <div class="engage-bar">
      <div class="like-wrapper"><span class="count">2.3万</span></div>
      <div class="chat-wrapper"><span class="count">456</span></div>
      <div class="collect-wrapper"><span class="count">1千</span></div>
    </div>
    <div class="note-content">
      <a class="tag">#大理旅行</a>
      <a class="tag">#骑行</a>
      <a class="tag">#大理旅行</a>
    </div>
    <div class="note-slider"><img src="https://ci.example.com/cover.webp"/></div>
  </div>
</body></html>`

func testExtractor(policy Policy) *XiaohongshuExtractor {
	return NewXiaohongshuExtractor(nil, policy, nil)
}

func TestParseDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xiaohongshuNoteHTML))
	require.NoError(t, err)

	e := testExtractor(Policy{})
	content, err := e.parseDocument(doc, "https://www.xiaohongshu.com/explore/abc")
	require.NoError(t, err)

	require.Equal(t, "大理洱海两日骑行路线", content.Title)
	require.Equal(t, PlatformXiaohongshu, content.Platform)
	require.Equal(t, "骑行的阿黎", content.Author.Name)
	require.Equal(t, 23000, content.Stats.Likes)
	require.Equal(t, 456, content.Stats.Comments)
	require.Equal(t, 1000, content.Stats.Shares)

	// "#" prefixes are stripped and duplicates collapse.
	require.Equal(t, []string{"大理旅行", "骑行"}, content.Tags)

	require.Len(t, content.Media, 1)
	require.Equal(t, MediaImage, content.Media[0].Type)

	// Heuristics ran over title plus description.
	locNames := make([]string, 0, len(content.Locations))
	for _, l := range content.Locations {
		locNames = append(locNames, l.Name)
	}
	require.Contains(t, locNames, "大理")
	require.Contains(t, locNames, "喜洲古镇")
}

const bilibiliVideoHTML = `
<html><body>
  <div class="video-info-title"><h1>成都三日游全攻略，吃遍宽窄巷子</h1></div>
  <div class="basic-desc-info">第一天宽窄巷子和人民公园，第二天大熊猫基地，第三天都江堰。</div>
  <div class="up-info"><a class="up-name">蓉城美食家</a></div>
  <div class="video-like-info">8.6万</div>
  <div class="total-reply">1.2万</div>
  <div class="bpx-player-ctrl-time-duration">12:34</div>
</body></html>`

func TestParseDocumentVideoDuration(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bilibiliVideoHTML))
	require.NoError(t, err)

	e := NewBilibiliExtractor(nil, Policy{}, nil)
	content, err := e.parseDocument(doc, "https://www.bilibili.com/video/BV1xx411c7mD")
	require.NoError(t, err)

	require.Equal(t, "成都三日游全攻略，吃遍宽窄巷子", content.Title)
	require.Equal(t, 86000, content.Stats.Likes)
	require.Equal(t, 754, content.VideoDurationSec)
}

func TestParseDocumentNoDurationElement(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xiaohongshuNoteHTML))
	require.NoError(t, err)

	e := testExtractor(Policy{})
	content, err := e.parseDocument(doc, "https://www.xiaohongshu.com/explore/abc")
	require.NoError(t, err)
	require.Zero(t, content.VideoDurationSec)
}

func TestParseDocumentNoTitle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>empty</p></body></html>"))
	require.NoError(t, err)

	e := testExtractor(Policy{})
	_, err = e.parseDocument(doc, "https://www.xiaohongshu.com/explore/abc")
	require.EqualError(t, err, "no title found on page")
}

func TestExtractRejectsInvalidURL(t *testing.T) {
	e := testExtractor(Policy{})
	_, err := e.Extract(context.Background(), "https://example.com/not-a-note")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid xiaohongshu url")
}

func TestExtractMockPolicy(t *testing.T) {
	e := testExtractor(Policy{RealExtraction: false})

	content, err := e.Extract(context.Background(), "https://www.xiaohongshu.com/explore/abc")
	require.NoError(t, err)
	require.Equal(t, PlatformXiaohongshu, content.Platform)
	require.Equal(t, "https://www.xiaohongshu.com/explore/abc", content.URL)
	require.NotEmpty(t, content.Title)
	require.NotEmpty(t, content.Locations)
}

func TestCheckStatusMockPolicyAlwaysUp(t *testing.T) {
	e := testExtractor(Policy{RealExtraction: false, OnFailure: config.FallbackMock})
	require.True(t, e.CheckStatus(context.Background()))
}

func TestPlatformURLPatterns(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.xiaohongshu.com/explore/64b2", PlatformXiaohongshu},
		{"http://xhslink.com/abCdEf", PlatformXiaohongshu},
		{"https://www.bilibili.com/video/BV1xx411c7mD", PlatformBilibili},
		{"https://b23.tv/abc123", PlatformBilibili},
		{"https://www.douyin.com/video/7123456", PlatformDouyin},
		{"https://www.iesdouyin.com/share/video/7123", PlatformDouyin},
		{"https://www.mafengwo.cn/i/24012345.html", PlatformMafengwo},
		{"https://m.mafengwo.cn/i/24012345.html", PlatformMafengwo},
	}
	for _, tc := range cases {
		platform, ok := DetectPlatform(tc.url)
		require.True(t, ok, tc.url)
		require.Equal(t, tc.want, platform, tc.url)
	}
}
