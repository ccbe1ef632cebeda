package services

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// BusService manages the fleet.
type BusService struct {
	api *upstream.Client
}

func NewBusService(api *upstream.Client) *BusService {
	return &BusService{api: api}
}

// Seat is one seat on a bus or trip. Availability is a flat pair of flags;
// the seats grid marks each seat from exactly these two fields.
type Seat struct {
	ID          int    `json:"id"`
	SeatNumber  string `json:"seat_number"`
	SeatType    string `json:"seat_type"` // "window" or "aisle"
	IsAvailable bool   `json:"is_available"`
	IsBooked    bool   `json:"is_booked"`
}

type Bus struct {
	ID          int    `json:"id"`
	BusID       int    `json:"bus_id"`
	PlateNumber string `json:"plate_number"`
	BusType     string `json:"bus_type"`
	TotalSeats  int    `json:"total_seats"`
	Seats       []Seat `json:"seats"`
}

type BusCreateData struct {
	PlateNumber string `json:"plate_number"`
	BusType     string `json:"bus_type"`
	TotalSeats  int    `json:"total_seats"`
}

type BusesPage = Paginated[Bus]

// BusFilters narrows the fleet listing.
type BusFilters struct {
	Page     int
	Search   string
	BusType  string
	IsActive *bool
}

func (s *BusService) List(ctx context.Context, f BusFilters) (*BusesPage, error) {
	q := pageQuery(f.Page)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.BusType != "" {
		q.Set("bus_type", f.BusType)
	}
	if f.IsActive != nil {
		q.Set("is_active", fmt.Sprintf("%t", *f.IsActive))
	}

	var out BusesPage
	if err := s.api.Get(ctx, "booking/buses/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[BusService.List]")
	}
	return &out, nil
}

func (s *BusService) Get(ctx context.Context, id string) (*Bus, error) {
	var out Bus
	if err := s.api.Get(ctx, fmt.Sprintf("booking/buses/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[BusService.Get]")
	}
	return &out, nil
}

// Available lists buses not currently assigned to an active trip.
func (s *BusService) Available(ctx context.Context) (*BusesPage, error) {
	var out BusesPage
	if err := s.api.Get(ctx, "booking/buses/available/", &out); err != nil {
		return nil, errors.Wrap(err, "[BusService.Available]")
	}
	return &out, nil
}

func (s *BusService) Create(ctx context.Context, data BusCreateData) (*Bus, error) {
	var out Bus
	if err := s.api.Post(ctx, "booking/buses/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[BusService.Create]")
	}
	return &out, nil
}

func (s *BusService) Update(ctx context.Context, id string, data BusCreateData) (*Bus, error) {
	var out Bus
	if err := s.api.Put(ctx, fmt.Sprintf("booking/buses/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[BusService.Update]")
	}
	return &out, nil
}

func (s *BusService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("booking/buses/%s/", id), nil); err != nil {
		return errors.Wrap(err, "[BusService.Delete]")
	}
	return nil
}
