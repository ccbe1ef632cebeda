package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// ClientService reads travelling-customer records and the operation-wide
// dashboard statistics.
type ClientService struct {
	api *upstream.Client
}

func NewClientService(api *upstream.Client) *ClientService {
	return &ClientService{api: api}
}

// Client is a travelling customer as reported by the booking API.
type Client struct {
	ID                  string      `json:"id"`
	PhoneNumber         string      `json:"phone_number"`
	MaskedPhone         string      `json:"masked_phone"`
	Email               string      `json:"email"`
	FullName            string      `json:"full_name"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Gender              string      `json:"gender"`
	Region              string      `json:"region"`
	RegionDisplay       string      `json:"region_display"`
	CityTown            string      `json:"city_town"`
	IsActive            bool        `json:"is_active"`
	IsVerified          bool        `json:"is_verified"`
	DateJoined          string      `json:"date_joined"`
	LastLogin           *string     `json:"last_login"`
	BookingCount        int         `json:"booking_count"`
	TotalBookingsAmount json.Number `json:"total_bookings_amount"`
	LastBookingDate     *string     `json:"last_booking_date"`
}

// ClientsPage is the client listing envelope. Unlike the other entities
// the API nests the records one level deeper.
type ClientsPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  struct {
		Success    bool     `json:"success"`
		Message    string   `json:"message"`
		Clients    []Client `json:"clients"`
		TotalCount int      `json:"total_count"`
	} `json:"results"`
}

// AdminStats is the dashboard statistics block.
type AdminStats struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stats   struct {
		Clients struct {
			Total           int `json:"total"`
			Active          int `json:"active"`
			Verified        int `json:"verified"`
			Inactive        int `json:"inactive"`
			WithBookings    int `json:"with_bookings"`
			WithoutBookings int `json:"without_bookings"`
			RecentSignups   int `json:"recent_signups"`
		} `json:"clients"`
		Bookings struct {
			Total     int `json:"total"`
			Confirmed int `json:"confirmed"`
			Pending   int `json:"pending"`
			Cancelled int `json:"cancelled"`
			Recent    int `json:"recent"`
		} `json:"bookings"`
		Revenue struct {
			Total        json.Number `json:"total"`
			Recent30Days json.Number `json:"recent_30_days"`
		} `json:"revenue"`
		Activity struct {
			Period      string `json:"period"`
			NewClients  int    `json:"new_clients"`
			NewBookings int    `json:"new_bookings"`
		} `json:"activity"`
	} `json:"stats"`
}

func (s *ClientService) List(ctx context.Context, page int, search string) (*ClientsPage, error) {
	q := pageQuery(page)
	if search != "" {
		q.Set("search", search)
	}

	var out ClientsPage
	if err := s.api.Get(ctx, "auth/admin/clients/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[ClientService.List]")
	}
	return &out, nil
}

func (s *ClientService) Stats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := s.api.Get(ctx, "auth/admin/stats/", &out); err != nil {
		return nil, errors.Wrap(err, "[ClientService.Stats]")
	}
	return &out, nil
}
