package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveLocationsGazetteer(t *testing.T) {
	locs := DeriveLocations("成都三日游，第一天逛了宽窄巷子，晚上去了春熙路")

	require.NotEmpty(t, locs)
	require.Equal(t, "成都", locs[0].Name)
	require.Equal(t, LocationCity, locs[0].Type)
}

func TestDeriveLocationsAdminSuffix(t *testing.T) {
	locs := DeriveLocations("住在乌镇古镇旁边，第二天去了西塘古镇")

	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.Name)
	}
	require.Contains(t, names, "乌镇古镇")
	require.Contains(t, names, "西塘古镇")
}

func TestDeriveLocationsDeduplicates(t *testing.T) {
	locs := DeriveLocations("东京东京东京，还是东京")
	require.Len(t, locs, 1)
	require.Equal(t, "东京", locs[0].Name)
}

func TestDeriveLocationsEmpty(t *testing.T) {
	require.Empty(t, DeriveLocations("hello world"))
}

func TestDeriveActivities(t *testing.T) {
	acts := DeriveActivities("这家火锅必吃，吃完去江边拍照打卡", nil)

	require.Len(t, acts, 2)
	require.Equal(t, ActivityFood, acts[0].Category)
	require.Equal(t, ActivityPhotography, acts[1].Category)
	require.Contains(t, acts[0].Description, "火锅")
}

func TestDeriveActivitiesFromTags(t *testing.T) {
	acts := DeriveActivities("普通标题", []string{"博物馆", "徒步"})

	require.Len(t, acts, 2)
	require.Equal(t, ActivityCulture, acts[0].Category)
	require.Equal(t, ActivityNature, acts[1].Category)
}

func TestDeriveActivitiesOnePerGroup(t *testing.T) {
	// Multiple keywords from the same group collapse into one activity.
	acts := DeriveActivities("美食 餐厅 小吃 探店", nil)
	require.Len(t, acts, 1)
}
