package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// LuggageService manages the chargeable luggage categories.
type LuggageService struct {
	api *upstream.Client
}

func NewLuggageService(api *upstream.Client) *LuggageService {
	return &LuggageService{api: api}
}

type LuggageType struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	MaxWeightKg float64     `json:"max_weight_kg"`
	Price       json.Number `json:"price"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

type LuggageTypeCreateData struct {
	Name        string  `json:"name"`
	MaxWeightKg float64 `json:"max_weight_kg"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
}

// LuggageTypeUpdateData carries a partial update; nil fields are left
// untouched.
type LuggageTypeUpdateData struct {
	Name        *string  `json:"name,omitempty"`
	MaxWeightKg *float64 `json:"max_weight_kg,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type LuggageTypesPage = Paginated[LuggageType]

func (s *LuggageService) List(ctx context.Context, page int, search string, isActive *bool) (*LuggageTypesPage, error) {
	q := pageQuery(page)
	if search != "" {
		q.Set("search", search)
	}
	if isActive != nil {
		q.Set("is_active", fmt.Sprintf("%t", *isActive))
	}

	var out LuggageTypesPage
	if err := s.api.Get(ctx, "booking/luggage-types/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[LuggageService.List]")
	}
	return &out, nil
}

func (s *LuggageService) Get(ctx context.Context, id string) (*LuggageType, error) {
	var out LuggageType
	if err := s.api.Get(ctx, fmt.Sprintf("booking/luggage-types/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[LuggageService.Get]")
	}
	return &out, nil
}

func (s *LuggageService) Create(ctx context.Context, data LuggageTypeCreateData) (*LuggageType, error) {
	var out LuggageType
	if err := s.api.Post(ctx, "booking/luggage-types/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[LuggageService.Create]")
	}
	return &out, nil
}

func (s *LuggageService) Update(ctx context.Context, id string, data LuggageTypeCreateData) (*LuggageType, error) {
	var out LuggageType
	if err := s.api.Put(ctx, fmt.Sprintf("booking/luggage-types/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[LuggageService.Update]")
	}
	return &out, nil
}

func (s *LuggageService) Patch(ctx context.Context, id string, data LuggageTypeUpdateData) (*LuggageType, error) {
	var out LuggageType
	if err := s.api.Patch(ctx, fmt.Sprintf("booking/luggage-types/%s/", id), data, &out); err != nil {
		return nil, errors.Wrap(err, "[LuggageService.Patch]")
	}
	return &out, nil
}

func (s *LuggageService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("booking/luggage-types/%s/", id), nil); err != nil {
		return errors.Wrap(err, "[LuggageService.Delete]")
	}
	return nil
}
