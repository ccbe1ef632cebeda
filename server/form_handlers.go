package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kay-express/admin-console/services"
)

// redirectWithMsg sends the browser back to a listing page with a flash
// message in the query string.
func redirectWithMsg(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}

// handleFormError routes a failed mutation: authorization failures go back
// to login (the session is already gone), everything else returns to the
// originating page with a generic error banner.
func handleFormError(w http.ResponseWriter, r *http.Request, err error, returnPath, errorMsg string) {
	if redirectIfSignedOut(w, r, err) {
		return
	}
	log.Err(err).Str("path", r.URL.Path).Msg("Form submission failed")
	redirectWithError(w, r, returnPath, errorMsg)
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(field)))
	return n
}

func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue(field)), 64)
	return f
}

// BusCreateHandler adds a bus to the fleet (POST /buses/create)
func (s *Server) BusCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteBuses, "Invalid form data")
			return
		}

		data := services.BusCreateData{
			PlateNumber: strings.TrimSpace(r.FormValue("plate_number")),
			BusType:     r.FormValue("bus_type"),
			TotalSeats:  formInt(r, "total_seats"),
		}
		if data.PlateNumber == "" || data.TotalSeats < 1 {
			redirectWithError(w, r, RouteBuses, "Plate number and seat count are required")
			return
		}

		if _, err := s.buses.Create(r.Context(), data); err != nil {
			handleFormError(w, r, err, RouteBuses, "Failed to create bus")
			return
		}
		redirectWithMsg(w, r, RouteBuses, "Bus "+data.PlateNumber+" created")
	}
}

// BusDeleteHandler removes a bus (POST /buses/{id}/delete)
func (s *Server) BusDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.buses.Delete(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteBuses, "Failed to delete bus")
			return
		}
		redirectWithMsg(w, r, RouteBuses, "Bus deleted")
	}
}

// RouteCreateHandler adds a route to the catalogue (POST /routes/create)
func (s *Server) RouteCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteRoutes, "Invalid form data")
			return
		}

		data := services.RouteCreateData{
			Name:                   strings.TrimSpace(r.FormValue("name")),
			Origin:                 strings.TrimSpace(r.FormValue("origin")),
			Destination:            strings.TrimSpace(r.FormValue("destination")),
			DistanceKm:             formFloat(r, "distance_km"),
			EstimatedDurationHours: formFloat(r, "estimated_duration_hours"),
			IsActive:               r.FormValue("is_active") == "on",
		}
		if data.Origin == "" || data.Destination == "" {
			redirectWithError(w, r, RouteRoutes, "Origin and destination are required")
			return
		}
		if data.Name == "" {
			data.Name = data.Origin + " - " + data.Destination
		}

		if _, err := s.catalog.Create(r.Context(), data); err != nil {
			handleFormError(w, r, err, RouteRoutes, "Failed to create route")
			return
		}
		redirectWithMsg(w, r, RouteRoutes, "Route "+data.Name+" created")
	}
}

// RouteDeleteHandler removes a route (POST /routes/{id}/delete)
func (s *Server) RouteDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.catalog.Delete(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteRoutes, "Failed to delete route")
			return
		}
		redirectWithMsg(w, r, RouteRoutes, "Route deleted")
	}
}

// TripCreateHandler schedules a departure (POST /trips/create). Pickup and
// drop points arrive as newline-separated "name|time" pairs.
func (s *Server) TripCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteTrips, "Invalid form data")
			return
		}

		data := services.TripCreateData{
			Route:             formInt(r, "route"),
			Bus:               formInt(r, "bus"),
			DepartureDatetime: r.FormValue("departure_datetime"),
			ArrivalDatetime:   r.FormValue("arrival_datetime"),
			PricePerSeat:      formFloat(r, "price_per_seat"),
			AvailableSeats:    formInt(r, "available_seats"),
			Status:            r.FormValue("status"),
			PickupPoints:      parseStopPoints(r.FormValue("pickup_points")),
			DropPoints:        parseStopPoints(r.FormValue("drop_points")),
		}
		if data.Status == "" {
			data.Status = "scheduled"
		}
		if data.Route == 0 || data.Bus == 0 || data.DepartureDatetime == "" {
			redirectWithError(w, r, RouteTrips, "Route, bus and departure time are required")
			return
		}

		if _, err := s.trips.Create(r.Context(), data); err != nil {
			handleFormError(w, r, err, RouteTrips, "Failed to create trip")
			return
		}
		redirectWithMsg(w, r, RouteTrips, "Trip scheduled")
	}
}

func parseStopPoints(raw string) []services.StopPoint {
	var points []services.StopPoint
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, timeStr, _ := strings.Cut(line, "|")
		points = append(points, services.StopPoint{
			Name: strings.TrimSpace(name),
			Time: strings.TrimSpace(timeStr),
		})
	}
	return points
}

// TripDeleteHandler removes a departure (POST /trips/{id}/delete)
func (s *Server) TripDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.trips.Delete(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteTrips, "Failed to delete trip")
			return
		}
		redirectWithMsg(w, r, RouteTrips, "Trip deleted")
	}
}

// BookingCancelHandler cancels a booking without removing it
// (POST /bookings/{id}/cancel)
func (s *Server) BookingCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.bookings.Cancel(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteBookings, "Failed to cancel booking")
			return
		}
		redirectWithMsg(w, r, RouteBookings, "Booking cancelled")
	}
}

// BookingDeleteHandler removes a booking (POST /bookings/{id}/delete)
func (s *Server) BookingDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.bookings.Delete(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteBookings, "Failed to delete booking")
			return
		}
		redirectWithMsg(w, r, RouteBookings, "Booking deleted")
	}
}

// LuggageCreateHandler adds a luggage category (POST /luggage/create)
func (s *Server) LuggageCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteLuggage, "Invalid form data")
			return
		}

		data := services.LuggageTypeCreateData{
			Name:        strings.TrimSpace(r.FormValue("name")),
			MaxWeightKg: formFloat(r, "max_weight_kg"),
			Price:       formFloat(r, "price"),
			IsActive:    r.FormValue("is_active") == "on",
		}
		if data.Name == "" {
			redirectWithError(w, r, RouteLuggage, "Name is required")
			return
		}

		if _, err := s.luggage.Create(r.Context(), data); err != nil {
			handleFormError(w, r, err, RouteLuggage, "Failed to create luggage type")
			return
		}
		redirectWithMsg(w, r, RouteLuggage, "Luggage type "+data.Name+" created")
	}
}

// LuggageDeleteHandler removes a luggage category (POST /luggage/{id}/delete)
func (s *Server) LuggageDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.luggage.Delete(r.Context(), id); err != nil {
			handleFormError(w, r, err, RouteLuggage, "Failed to delete luggage type")
			return
		}
		redirectWithMsg(w, r, RouteLuggage, "Luggage type deleted")
	}
}

// AgentApproveHandler activates an agent application
// (POST /agents/{id}/approve). An empty commission field keeps the default
// rate.
func (s *Server) AgentApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		returnPath := "/agents/" + id

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, returnPath, "Invalid form data")
			return
		}

		var rate *float64
		if raw := strings.TrimSpace(r.FormValue("commission_rate")); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 || parsed > 100 {
				redirectWithError(w, r, returnPath, "Commission rate must be between 0 and 100")
				return
			}
			rate = &parsed
		}

		if err := s.agents.Approve(r.Context(), id, rate); err != nil {
			handleFormError(w, r, err, returnPath, "Failed to approve agent")
			return
		}
		redirectWithMsg(w, r, returnPath, "Agent approved")
	}
}

// AgentRejectHandler rejects an agent application (POST /agents/{id}/reject)
func (s *Server) AgentRejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		returnPath := "/agents/" + id

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, returnPath, "Invalid form data")
			return
		}

		reason := strings.TrimSpace(r.FormValue("rejection_reason"))
		if reason == "" {
			redirectWithError(w, r, returnPath, "A rejection reason is required")
			return
		}

		if err := s.agents.Reject(r.Context(), id, reason); err != nil {
			handleFormError(w, r, err, returnPath, "Failed to reject agent")
			return
		}
		redirectWithMsg(w, r, returnPath, "Agent rejected")
	}
}

// AgentRegisterSubmissionHandler processes the public agent application form
// (POST /agents/register). No session is involved; the success redirect
// carries the reference number the applicant must keep.
func (s *Server) AgentRegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAgentRegister, "Invalid form data")
			return
		}

		data := services.AgentRegistrationData{
			FullName:            strings.TrimSpace(r.FormValue("full_name")),
			PhoneNumber:         strings.TrimSpace(r.FormValue("phone_number")),
			Email:               strings.TrimSpace(r.FormValue("email")),
			IDType:              r.FormValue("id_type"),
			IDNumber:            strings.TrimSpace(r.FormValue("id_number")),
			Region:              r.FormValue("region"),
			CityTown:            strings.TrimSpace(r.FormValue("city_town")),
			AreaSuburb:          strings.TrimSpace(r.FormValue("area_suburb")),
			MobileMoneyProvider: r.FormValue("mobile_money_provider"),
			MobileMoneyNumber:   strings.TrimSpace(r.FormValue("mobile_money_number")),
			Availability:        r.FormValue("availability"),
			ReferralCode:        strings.TrimSpace(r.FormValue("referral_code")),
			WhyJoin:             strings.TrimSpace(r.FormValue("why_join")),
		}
		if data.FullName == "" || data.PhoneNumber == "" {
			redirectWithError(w, r, RouteAgentRegister, "Full name and phone number are required")
			return
		}

		res, err := s.agents.Register(r.Context(), data)
		if err != nil {
			log.Err(err).Msg("Agent registration failed")
			redirectWithError(w, r, RouteAgentRegister, "Registration failed, please try again")
			return
		}

		target := RouteAgentRegister +
			"?msg=" + url.QueryEscape("Application received") +
			"&ref=" + url.QueryEscape(res.Data.ReferenceNumber)
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
