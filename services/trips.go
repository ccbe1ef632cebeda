package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// TripService manages scheduled departures and their seat maps.
type TripService struct {
	api *upstream.Client
}

func NewTripService(api *upstream.Client) *TripService {
	return &TripService{api: api}
}

type StopPoint struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Time string `json:"time"`
}

type Trip struct {
	ID                int         `json:"id"`
	Route             int         `json:"route,omitempty"`
	RouteName         string      `json:"route_name"`
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	Bus               int         `json:"bus,omitempty"`
	BusPlate          string      `json:"bus_plate"`
	BusType           string      `json:"bus_type"`
	DepartureDatetime string      `json:"departure_datetime"`
	ArrivalDatetime   string      `json:"arrival_datetime"`
	PricePerSeat      json.Number `json:"price_per_seat"`
	AvailableSeats    int         `json:"available_seats"`
	Status            string      `json:"status"` // scheduled, boarding, in_transit, cancelled, completed
	PickupPoints      []StopPoint `json:"pickup_points"`
	DropPoints        []StopPoint `json:"drop_points"`
	CreatedAt         string      `json:"created_at,omitempty"`
	UpdatedAt         string      `json:"updated_at,omitempty"`
}

type TripCreateData struct {
	Route             int         `json:"route"`
	Bus               int         `json:"bus"`
	DepartureDatetime string      `json:"departure_datetime"`
	ArrivalDatetime   string      `json:"arrival_datetime"`
	PricePerSeat      float64     `json:"price_per_seat"`
	AvailableSeats    int         `json:"available_seats"`
	Status            string      `json:"status"`
	PickupPoints      []StopPoint `json:"pickup_points"`
	DropPoints        []StopPoint `json:"drop_points"`
}

// TripUpdateData carries a partial update; nil fields are left untouched.
type TripUpdateData struct {
	Route             *int        `json:"route,omitempty"`
	Bus               *int        `json:"bus,omitempty"`
	DepartureDatetime *string     `json:"departure_datetime,omitempty"`
	ArrivalDatetime   *string     `json:"arrival_datetime,omitempty"`
	PricePerSeat      *float64    `json:"price_per_seat,omitempty"`
	AvailableSeats    *int        `json:"available_seats,omitempty"`
	Status            *string     `json:"status,omitempty"`
	PickupPoints      []StopPoint `json:"pickup_points,omitempty"`
	DropPoints        []StopPoint `json:"drop_points,omitempty"`
}

type TripsPage = Paginated[Trip]

// TripSeats is the seat-availability view for one trip.
type TripSeats struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TripID  int    `json:"trip_id"`
	Seats   []Seat `json:"seats"`
}

// TripFilters narrows the departures listing.
type TripFilters struct {
	Page        int
	Status      string
	Route       string
	Origin      string
	Destination string
	StartDate   string
	EndDate     string
	Search      string
}

func (s *TripService) List(ctx context.Context, f TripFilters) (*TripsPage, error) {
	q := pageQuery(f.Page)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Route != "" {
		q.Set("route", f.Route)
	}
	if f.Origin != "" {
		q.Set("origin", f.Origin)
	}
	if f.Destination != "" {
		q.Set("destination", f.Destination)
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	var out TripsPage
	if err := s.api.Get(ctx, "booking/trips/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.List]")
	}
	return &out, nil
}

func (s *TripService) Get(ctx context.Context, id string) (*Trip, error) {
	var out Trip
	if err := s.api.Get(ctx, fmt.Sprintf("booking/trips/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.Get]")
	}
	return &out, nil
}

func (s *TripService) Seats(ctx context.Context, id string) (*TripSeats, error) {
	var out TripSeats
	if err := s.api.Get(ctx, fmt.Sprintf("booking/trips/%s/seats/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.Seats]")
	}
	return &out, nil
}

func (s *TripService) Create(ctx context.Context, data TripCreateData) (*Trip, error) {
	var out Trip
	if err := s.api.Post(ctx, "booking/trips/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.Create]")
	}
	return &out, nil
}

func (s *TripService) Update(ctx context.Context, id string, data TripCreateData) (*Trip, error) {
	var out Trip
	if err := s.api.Put(ctx, fmt.Sprintf("booking/trips/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.Update]")
	}
	return &out, nil
}

func (s *TripService) Patch(ctx context.Context, id string, data TripUpdateData) (*Trip, error) {
	var out Trip
	if err := s.api.Patch(ctx, fmt.Sprintf("booking/trips/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[TripService.Patch]")
	}
	return &out, nil
}

func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("booking/trips/%s/", id), nil); err != nil {
		return errors.Wrap(err, "[TripService.Delete]")
	}
	return nil
}
