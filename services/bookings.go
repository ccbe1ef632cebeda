package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// BookingService manages seat reservations. Seat locking and pricing are
// enforced upstream; a rejected create simply comes back as a validation
// error for the form.
type BookingService struct {
	api *upstream.Client
}

func NewBookingService(api *upstream.Client) *BookingService {
	return &BookingService{api: api}
}

type BookingTripDetails struct {
	ID                int         `json:"id"`
	RouteName         string      `json:"route_name"`
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	BusPlate          string      `json:"bus_plate"`
	BusType           string      `json:"bus_type"`
	DepartureDatetime string      `json:"departure_datetime"`
	ArrivalDatetime   string      `json:"arrival_datetime"`
	PricePerSeat      json.Number `json:"price_per_seat"`
	AvailableSeats    int         `json:"available_seats"`
	Status            string      `json:"status"`
	PickupPoints      []StopPoint `json:"pickup_points"`
	DropPoints        []StopPoint `json:"drop_points"`
}

type BookingUserDetails struct {
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
}

type Booking struct {
	ID               int                 `json:"id"`
	BookingReference string              `json:"booking_reference"`
	Trip             int                 `json:"trip"`
	TripDetails      BookingTripDetails  `json:"trip_details"`
	Seat             int                 `json:"seat"`
	SeatNumber       string              `json:"seat_number"`
	PickupPointID    string              `json:"pickup_point_id"`
	DropPointID      string              `json:"drop_point_id"`
	TotalAmount      json.Number         `json:"total_amount"`
	Status           string              `json:"status"` // confirmed, pending, cancelled, completed
	Agent            int                 `json:"agent,omitempty"`
	AgentName        string              `json:"agent_name,omitempty"`
	AgentReference   string              `json:"agent_reference,omitempty"`
	User             string              `json:"user,omitempty"`
	UserDetails      *BookingUserDetails `json:"user_details,omitempty"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

type BookingCreateData struct {
	TripID        int    `json:"trip_id"`
	SeatIDs       []int  `json:"seat_ids"`
	PickupPointID string `json:"pickup_point_id"`
	DropPointID   string `json:"drop_point_id"`
}

// BookingUpdateData carries a partial update; nil fields are left untouched.
type BookingUpdateData struct {
	Status        *string `json:"status,omitempty"`
	TripID        *int    `json:"trip_id,omitempty"`
	SeatIDs       []int   `json:"seat_ids,omitempty"`
	PickupPointID *string `json:"pickup_point_id,omitempty"`
	DropPointID   *string `json:"drop_point_id,omitempty"`
}

type BookingsPage = Paginated[Booking]

type bookingEnvelope struct {
	Result
	Booking Booking `json:"booking"`
}

// BookingFilters narrows the bookings listing.
type BookingFilters struct {
	Page   int
	Search string
	Status string
}

func (s *BookingService) List(ctx context.Context, f BookingFilters) (*BookingsPage, error) {
	q := pageQuery(f.Page)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var out BookingsPage
	if err := s.api.Get(ctx, "booking/bookings/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[BookingService.List]")
	}
	return &out, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*Booking, error) {
	var out bookingEnvelope
	if err := s.api.Get(ctx, fmt.Sprintf("booking/bookings/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[BookingService.Get]")
	}
	return &out.Booking, nil
}

func (s *BookingService) Create(ctx context.Context, data BookingCreateData) (*Booking, error) {
	var out bookingEnvelope
	if err := s.api.Post(ctx, "booking/bookings/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[BookingService.Create]")
	}
	return &out.Booking, nil
}

func (s *BookingService) Update(ctx context.Context, id string, data BookingCreateData) (*Booking, error) {
	var out bookingEnvelope
	if err := s.api.Put(ctx, fmt.Sprintf("booking/bookings/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[BookingService.Update]")
	}
	return &out.Booking, nil
}

func (s *BookingService) Patch(ctx context.Context, id string, data BookingUpdateData) (*Booking, error) {
	var out bookingEnvelope
	if err := s.api.Patch(ctx, fmt.Sprintf("booking/bookings/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[BookingService.Patch]")
	}
	return &out.Booking, nil
}

// Cancel marks a booking cancelled without removing it.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	var out Result
	if err := s.api.Post(ctx, fmt.Sprintf("booking/bookings/%s/cancel/", id), nil, &out); err != nil {
		return errors.Wrap(err, "[BookingService.Cancel]")
	}
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("booking/bookings/%s/", id), nil); err != nil {
		return errors.Wrap(err, "[BookingService.Delete]")
	}
	return nil
}
