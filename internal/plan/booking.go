package plan

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"tripcraft/internal/logging"
)

// FlightQuery describes a flight search.
type FlightQuery struct {
	From      string
	To        string
	Date      string
	Travelers int
}

// HotelQuery describes a hotel search.
type HotelQuery struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Travelers   int
}

// BookingService serves flight and hotel suggestions. Results are mocked —
// provider integration correctness is out of scope — but the shape, ids and
// deep links match what a real provider adapter would return.
type BookingService struct {
	logger logging.Logger
}

func NewBookingService() *BookingService {
	return &BookingService{logger: logging.NewComponentLogger("booking")}
}

// SearchFlights returns canned flight options for the query with tracked
// provider deep links.
func (s *BookingService) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from := q.From
	if from == "" {
		from = "上海"
	}
	s.logger.Debug("flight search %s → %s", from, q.To)

	templates := []struct {
		airline string
		number  string
		depart  string
		arrive  string
		price   float64
	}{
		{"中国东方航空", "MU5137", "08:30", "11:05", 1280},
		{"中国国际航空", "CA1832", "13:15", "15:50", 1150},
		{"春秋航空", "9C8921", "19:40", "22:10", 680},
	}

	flights := make([]FlightOption, 0, len(templates))
	for _, t := range templates {
		id := uuid.NewString()
		flights = append(flights, FlightOption{
			ID:            id,
			Airline:       t.airline,
			FlightNumber:  t.number,
			From:          from,
			To:            q.To,
			DepartureTime: t.depart,
			ArrivalTime:   t.arrive,
			Price:         t.price,
			DeepLink:      flightDeepLink(from, q.To, q.Date, id),
		})
	}
	return flights, nil
}

// SearchHotels returns canned hotel options for the query.
func (s *BookingService) SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("hotel search in %s", q.Destination)

	templates := []struct {
		name   string
		rating float64
		price  float64
	}{
		{q.Destination + "中心智选酒店", 4.6, 420},
		{q.Destination + "湖畔精品民宿", 4.8, 580},
		{q.Destination + "青年旅舍", 4.3, 120},
	}

	hotels := make([]HotelOption, 0, len(templates))
	for _, t := range templates {
		id := uuid.NewString()
		hotels = append(hotels, HotelOption{
			ID:            id,
			Name:          t.name,
			Address:       q.Destination + "市中心",
			Rating:        t.rating,
			PricePerNight: t.price,
			DeepLink:      hotelDeepLink(q.Destination, q.CheckIn, q.CheckOut, id),
		})
	}
	return hotels, nil
}

func flightDeepLink(from, to, date, ref string) string {
	v := url.Values{}
	v.Set("from", from)
	v.Set("to", to)
	if date != "" {
		v.Set("date", date)
	}
	v.Set("ref", ref)
	v.Set("utm_source", "tripcraft")
	return fmt.Sprintf("https://flights.example.com/search?%s", v.Encode())
}

func hotelDeepLink(city, checkIn, checkOut, ref string) string {
	v := url.Values{}
	v.Set("city", city)
	if checkIn != "" {
		v.Set("checkin", checkIn)
	}
	if checkOut != "" {
		v.Set("checkout", checkOut)
	}
	v.Set("ref", ref)
	v.Set("utm_source", "tripcraft")
	return fmt.Sprintf("https://hotels.example.com/search?%s", v.Encode())
}
