package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchFlights(t *testing.T) {
	svc := NewBookingService()

	flights, err := svc.SearchFlights(context.Background(), FlightQuery{From: "北京", To: "成都", Date: "2026-10-01"})
	require.NoError(t, err)
	require.Len(t, flights, 3)

	seen := map[string]bool{}
	for _, f := range flights {
		require.NotEmpty(t, f.ID)
		require.False(t, seen[f.ID], "ids are unique")
		seen[f.ID] = true
		require.Equal(t, "北京", f.From)
		require.Equal(t, "成都", f.To)
		require.Greater(t, f.Price, 0.0)
		require.Contains(t, f.DeepLink, "ref="+f.ID)
		require.Contains(t, f.DeepLink, "utm_source=tripcraft")
	}
}

func TestSearchFlightsDefaultsOrigin(t *testing.T) {
	svc := NewBookingService()
	flights, err := svc.SearchFlights(context.Background(), FlightQuery{To: "三亚"})
	require.NoError(t, err)
	require.Equal(t, "上海", flights[0].From)
}

func TestSearchHotels(t *testing.T) {
	svc := NewBookingService()

	hotels, err := svc.SearchHotels(context.Background(), HotelQuery{Destination: "大理", CheckIn: "2026-10-01", CheckOut: "2026-10-03"})
	require.NoError(t, err)
	require.Len(t, hotels, 3)
	for _, h := range hotels {
		require.Contains(t, h.Name, "大理")
		require.Greater(t, h.PricePerNight, 0.0)
		require.Contains(t, h.DeepLink, "checkin=2026-10-01")
	}
}

func TestBookingHonorsCancelledContext(t *testing.T) {
	svc := NewBookingService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SearchFlights(ctx, FlightQuery{To: "成都"})
	require.Error(t, err)
	_, err = svc.SearchHotels(ctx, HotelQuery{Destination: "成都"})
	require.Error(t, err)
}
