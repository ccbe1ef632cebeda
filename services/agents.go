package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kay-express/admin-console/upstream"
)

// AgentService manages the sales-agent programme: public registration plus
// the admin review workflow. Commission calculation is upstream's job.
type AgentService struct {
	api *upstream.Client
}

func NewAgentService(api *upstream.Client) *AgentService {
	return &AgentService{api: api}
}

type Agent struct {
	ID                  int         `json:"id"`
	ReferenceNumber     string      `json:"reference_number"`
	FullName            string      `json:"full_name"`
	PhoneNumber         string      `json:"phone_number"`
	Email               string      `json:"email"`
	IDType              string      `json:"id_type"`
	IDNumber            string      `json:"id_number"`
	Region              string      `json:"region"`
	CityTown            string      `json:"city_town"`
	AreaSuburb          string      `json:"area_suburb,omitempty"`
	MobileMoneyProvider string      `json:"mobile_money_provider"`
	MobileMoneyNumber   string      `json:"mobile_money_number"`
	Availability        string      `json:"availability"`
	ReferralCode        string      `json:"referral_code,omitempty"`
	WhyJoin             string      `json:"why_join"`
	Status              string      `json:"status"` // pending, approved, rejected
	CommissionRate      json.Number `json:"commission_rate"`
	TotalBookings       int         `json:"total_bookings"`
	TotalEarnings       json.Number `json:"total_earnings"`
	PendingCommission   json.Number `json:"pending_commission,omitempty"`
	ApprovedByName      string      `json:"approved_by_name,omitempty"`
	ApprovedAt          string      `json:"approved_at,omitempty"`
	RejectionReason     string      `json:"rejection_reason,omitempty"`
	CreatedAt           string      `json:"created_at"`
	UpdatedAt           string      `json:"updated_at"`
}

type AgentRegistrationData struct {
	FullName            string `json:"full_name"`
	PhoneNumber         string `json:"phone_number"`
	Email               string `json:"email"`
	IDType              string `json:"id_type"`
	IDNumber            string `json:"id_number"`
	Region              string `json:"region"`
	CityTown            string `json:"city_town"`
	AreaSuburb          string `json:"area_suburb,omitempty"`
	MobileMoneyProvider string `json:"mobile_money_provider"`
	MobileMoneyNumber   string `json:"mobile_money_number"`
	Availability        string `json:"availability"`
	ReferralCode        string `json:"referral_code,omitempty"`
	WhyJoin             string `json:"why_join"`
}

type AgentRegistrationResult struct {
	Result
	Data struct {
		AgentID         int    `json:"agent_id"`
		ReferenceNumber string `json:"reference_number"`
	} `json:"data"`
}

type AgentBooking struct {
	BookingReference string      `json:"booking_reference"`
	ClientName       string      `json:"client_name"`
	TripRoute        string      `json:"trip_route"`
	TotalAmount      json.Number `json:"total_amount"`
	CommissionAmount json.Number `json:"commission_amount"`
	Status           string      `json:"status"`
	CreatedAt        string      `json:"created_at"`
}

type AgentStats struct {
	Agents struct {
		Total    int `json:"total"`
		Approved int `json:"approved"`
		Pending  int `json:"pending"`
		Rejected int `json:"rejected"`
	} `json:"agents"`
	Commissions struct {
		Total   json.Number `json:"total"`
		Pending json.Number `json:"pending"`
		Paid    json.Number `json:"paid"`
	} `json:"commissions"`
}

type AgentsPage = Paginated[Agent]
type AgentBookingsPage = Paginated[AgentBooking]

// AgentFilters narrows the agent listing.
type AgentFilters struct {
	Page   int
	Search string
	Status string
	Region string
}

// Register submits a public agent application. This is one of the two
// endpoints intentionally reachable without a bearer credential.
func (s *AgentService) Register(ctx context.Context, data AgentRegistrationData) (*AgentRegistrationResult, error) {
	var out AgentRegistrationResult
	if err := s.api.Post(ctx, "agents/register/", data, &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Register]")
	}
	return &out, nil
}

func (s *AgentService) List(ctx context.Context, f AgentFilters) (*AgentsPage, error) {
	q := pageQuery(f.Page)
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Region != "" {
		q.Set("region", f.Region)
	}

	var out AgentsPage
	if err := s.api.Get(ctx, "agents/manage/?"+q.Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.List]")
	}
	return &out, nil
}

func (s *AgentService) Approved(ctx context.Context, page int) (*AgentsPage, error) {
	var out AgentsPage
	if err := s.api.Get(ctx, "agents/manage/approved/?"+pageQuery(page).Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Approved]")
	}
	return &out, nil
}

func (s *AgentService) Pending(ctx context.Context, page int) (*AgentsPage, error) {
	var out AgentsPage
	if err := s.api.Get(ctx, "agents/manage/pending/?"+pageQuery(page).Encode(), &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Pending]")
	}
	return &out, nil
}

func (s *AgentService) Get(ctx context.Context, id string) (*Agent, error) {
	var out Agent
	if err := s.api.Get(ctx, fmt.Sprintf("agents/manage/%s/", id), &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Get]")
	}
	return &out, nil
}

// Approve activates an agent, optionally overriding the default
// commission rate.
func (s *AgentService) Approve(ctx context.Context, id string, commissionRate *float64) error {
	body := map[string]any{}
	if commissionRate != nil {
		body["commission_rate"] = *commissionRate
	}

	var out Result
	if err := s.api.Post(ctx, fmt.Sprintf("agents/manage/%s/approve/", id), body, &out); err != nil {
		return errors.Wrap(err, "[AgentService.Approve]")
	}
	return nil
}

func (s *AgentService) Reject(ctx context.Context, id, reason string) error {
	var out Result
	body := map[string]string{"rejection_reason": reason}
	if err := s.api.Post(ctx, fmt.Sprintf("agents/manage/%s/reject/", id), body, &out); err != nil {
		return errors.Wrap(err, "[AgentService.Reject]")
	}
	return nil
}

func (s *AgentService) Bookings(ctx context.Context, id string, page int) (*AgentBookingsPage, error) {
	var out AgentBookingsPage
	if err := s.api.Get(ctx, fmt.Sprintf("agents/manage/%s/bookings/?%s", id, pageQuery(page).Encode()), &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Bookings]")
	}
	return &out, nil
}

func (s *AgentService) Stats(ctx context.Context) (*AgentStats, error) {
	var out AgentStats
	if err := s.api.Get(ctx, "agents/manage/stats/", &out); err != nil {
		return nil, errors.Wrap(err, "[AgentService.Stats]")
	}
	return &out, nil
}
