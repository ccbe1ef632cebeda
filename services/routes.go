package services

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// RouteService manages the origin/destination catalogue.
type RouteService struct {
	api *upstream.Client
}

func NewRouteService(api *upstream.Client) *RouteService {
	return &RouteService{api: api}
}

type Route struct {
	ID                     int     `json:"id"`
	Name                   string  `json:"name"`
	Origin                 string  `json:"origin"`
	Destination            string  `json:"destination"`
	DistanceKm             float64 `json:"distance_km"`
	EstimatedDurationHours float64 `json:"estimated_duration_hours"`
	IsActive               bool    `json:"is_active"`
	CreatedAt              string  `json:"created_at,omitempty"`
	UpdatedAt              string  `json:"updated_at,omitempty"`
}

type RouteCreateData struct {
	Name                   string  `json:"name"`
	Origin                 string  `json:"origin"`
	Destination            string  `json:"destination"`
	DistanceKm             float64 `json:"distance_km"`
	EstimatedDurationHours float64 `json:"estimated_duration_hours"`
	IsActive               bool    `json:"is_active"`
}

// RouteUpdateData carries a partial update; nil fields are left untouched.
type RouteUpdateData struct {
	Name                   *string  `json:"name,omitempty"`
	Origin                 *string  `json:"origin,omitempty"`
	Destination            *string  `json:"destination,omitempty"`
	DistanceKm             *float64 `json:"distance_km,omitempty"`
	EstimatedDurationHours *float64 `json:"estimated_duration_hours,omitempty"`
	IsActive               *bool    `json:"is_active,omitempty"`
}

type RoutesPage = Paginated[Route]

func (s *RouteService) List(ctx context.Context, page int, search string, isActive *bool) (*RoutesPage, error) {
	q := pageQuery(page)
	if search != "" {
		q.Set("search", search)
	}
	if isActive != nil {
		q.Set("is_active", fmt.Sprintf("%t", *isActive))
	}

	var out RoutesPage
	if err := s.api.Get(ctx, "booking/routes/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[RouteService.List]")
	}
	return &out, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (*Route, error) {
	var out Route
	if err := s.api.Get(ctx, fmt.Sprintf("booking/routes/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[RouteService.Get]")
	}
	return &out, nil
}

func (s *RouteService) Create(ctx context.Context, data RouteCreateData) (*Route, error) {
	var out Route
	if err := s.api.Post(ctx, "booking/routes/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[RouteService.Create]")
	}
	return &out, nil
}

func (s *RouteService) Update(ctx context.Context, id string, data RouteCreateData) (*Route, error) {
	var out Route
	if err := s.api.Put(ctx, fmt.Sprintf("booking/routes/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[RouteService.Update]")
	}
	return &out, nil
}

func (s *RouteService) Patch(ctx context.Context, id string, data RouteUpdateData) (*Route, error) {
	var out Route
	if err := s.api.Patch(ctx, fmt.Sprintf("booking/routes/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[RouteService.Patch]")
	}
	return &out, nil
}

func (s *RouteService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("booking/routes/%s/", id), nil); err != nil {
		return errors.Wrap(err, "[RouteService.Delete]")
	}
	return nil
}
