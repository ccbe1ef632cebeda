package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kay-express/admin-console/services"
	"github.com/kay-express/admin-console/session"
	"github.com/kay-express/admin-console/upstream"
)

// pageData is the data the shared layout template receives. Content is
// the already-rendered page body.
type pageData struct {
	AppName    string
	UserName   string
	ActivePage string
	PageTitle  string
	Error      string
	Msg        string
	Content    template.HTML
}

// pageNav carries pagination state for listing pages.
type pageNav struct {
	Page    int
	Count   int
	HasPrev bool
	HasNext bool
	Prev    int
	Next    int
}

func newPageNav(page, count int, prev, next *string) pageNav {
	return pageNav{
		Page:    page,
		Count:   count,
		HasPrev: prev != nil,
		HasNext: next != nil,
		Prev:    page - 1,
		Next:    page + 1,
	}
}

func currentPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageRenderer pre-parses the layout plus one content template and renders
// the pair. Parsing happens at route-registration time so a broken template
// fails at startup, not on first visit.
type pageRenderer struct {
	layout  *template.Template
	content *template.Template
}

func (s *Server) newPageRenderer(contentTemplate string) *pageRenderer {
	layout, err := ParseTemplate("layout.html")
	if err != nil {
		panic("Failed to parse layout template: " + err.Error())
	}
	content, err := ParseTemplate(contentTemplate)
	if err != nil {
		panic("Failed to parse " + contentTemplate + ": " + err.Error())
	}
	return &pageRenderer{layout: layout, content: content}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p *pageRenderer, activePage, pageTitle string, data any, errorMsg string) {
	var buf bytes.Buffer
	if err := p.content.Execute(&buf, data); err != nil {
		log.Err(err).Str("page", activePage).Msg("Failed to render page content")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	userName := ""
	if sess := SessionFromContext(r.Context()); sess != nil {
		userName = sess.Name
	}

	page := pageData{
		AppName:    s.config.GetAppName(),
		UserName:   userName,
		ActivePage: activePage,
		PageTitle:  pageTitle,
		Error:      errorMsg,
		Msg:        r.URL.Query().Get("msg"),
		Content:    template.HTML(buf.String()),
	}
	if page.Error == "" {
		page.Error = r.URL.Query().Get("error")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.layout.Execute(w, page); err != nil {
		log.Err(err).Str("page", activePage).Msg("Failed to render layout")
	}
}

// redirectIfSignedOut handles the authorization-failure escalation for page
// loads. When the API rejected the credential the sign-out scope has already
// dropped the session, so the only sensible continuation is the login page.
// Returns true when the request was redirected.
func redirectIfSignedOut(w http.ResponseWriter, r *http.Request, err error) bool {
	if upstream.IsAuthorizationFailure(err) {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return true
	}
	return false
}

// DashboardHandler renders the operation-wide statistics (GET /)
func (s *Server) DashboardHandler() http.HandlerFunc {
	page := s.newPageRenderer("dashboard.html")

	type dashboardData struct {
		Stats      *services.AdminStats
		AgentStats *services.AgentStats
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := dashboardData{}
		errorMsg := ""

		stats, err := s.clients.Stats(r.Context())
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to load dashboard stats")
			errorMsg = "Failed to load dashboard statistics"
		} else {
			data.Stats = stats
		}

		agentStats, err := s.agents.Stats(r.Context())
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to load agent stats")
		} else {
			data.AgentStats = agentStats
		}

		s.renderPage(w, r, page, "dashboard", "Dashboard", data, errorMsg)
	}
}

// ClientsHandler lists travelling customers (GET /clients)
func (s *Server) ClientsHandler() http.HandlerFunc {
	page := s.newPageRenderer("clients.html")

	type clientsData struct {
		Clients []services.Client
		Search  string
		Nav     pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		pageNum := currentPage(r)
		search := r.URL.Query().Get("search")

		data := clientsData{Search: search}
		errorMsg := ""

		res, err := s.clients.List(r.Context(), pageNum, search)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list clients")
			errorMsg = "Failed to load clients"
		} else {
			data.Clients = res.Results.Clients
			data.Nav = newPageNav(pageNum, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "clients", "Clients", data, errorMsg)
	}
}

// BusesHandler lists the fleet (GET /buses)
func (s *Server) BusesHandler() http.HandlerFunc {
	page := s.newPageRenderer("buses.html")

	type busesData struct {
		Buses   []services.Bus
		Search  string
		BusType string
		Nav     pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filters := services.BusFilters{
			Page:    currentPage(r),
			Search:  r.URL.Query().Get("search"),
			BusType: r.URL.Query().Get("bus_type"),
		}

		data := busesData{Search: filters.Search, BusType: filters.BusType}
		errorMsg := ""

		res, err := s.buses.List(r.Context(), filters)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list buses")
			errorMsg = "Failed to load buses"
		} else {
			data.Buses = res.Results
			data.Nav = newPageNav(filters.Page, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "buses", "Buses", data, errorMsg)
	}
}

// RoutesHandler lists the origin/destination catalogue (GET /routes)
func (s *Server) RoutesHandler() http.HandlerFunc {
	page := s.newPageRenderer("routes.html")

	type routesData struct {
		Routes []services.Route
		Search string
		Nav    pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		pageNum := currentPage(r)
		search := r.URL.Query().Get("search")

		data := routesData{Search: search}
		errorMsg := ""

		res, err := s.catalog.List(r.Context(), pageNum, search, nil)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list routes")
			errorMsg = "Failed to load routes"
		} else {
			data.Routes = res.Results
			data.Nav = newPageNav(pageNum, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "routes", "Routes", data, errorMsg)
	}
}

// TripsHandler lists scheduled departures (GET /trips)
func (s *Server) TripsHandler() http.HandlerFunc {
	page := s.newPageRenderer("trips.html")

	type tripsData struct {
		Trips  []services.Trip
		Status string
		Search string
		Nav    pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filters := services.TripFilters{
			Page:   currentPage(r),
			Status: r.URL.Query().Get("status"),
			Search: r.URL.Query().Get("search"),
		}

		data := tripsData{Status: filters.Status, Search: filters.Search}
		errorMsg := ""

		res, err := s.trips.List(r.Context(), filters)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list trips")
			errorMsg = "Failed to load trips"
		} else {
			data.Trips = res.Results
			data.Nav = newPageNav(filters.Page, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "trips", "Trips", data, errorMsg)
	}
}

// seatView is one cell of the seat grid with its display state resolved.
type seatView struct {
	services.Seat
	State string // booked, available or unavailable
}

func seatState(seat services.Seat) string {
	switch {
	case seat.IsBooked:
		return "booked"
	case seat.IsAvailable:
		return "available"
	default:
		return "unavailable"
	}
}

// TripSeatsHandler renders the seat map for one departure
// (GET /trips/{id}/seats)
func (s *Server) TripSeatsHandler() http.HandlerFunc {
	page := s.newPageRenderer("trip_seats.html")

	type tripSeatsData struct {
		Trip  *services.Trip
		Seats []seatView
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		trip, err := s.trips.Get(r.Context(), id)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Str("trip", id).Msg("Failed to load trip")
			s.renderPage(w, r, page, "trips", "Trip Seats", tripSeatsData{}, "Failed to load trip")
			return
		}

		data := tripSeatsData{Trip: trip}
		errorMsg := ""

		seats, err := s.trips.Seats(r.Context(), id)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Str("trip", id).Msg("Failed to load trip seats")
			errorMsg = "Failed to load seat availability"
		} else {
			for _, seat := range seats.Seats {
				data.Seats = append(data.Seats, seatView{Seat: seat, State: seatState(seat)})
			}
		}

		s.renderPage(w, r, page, "trips", "Trip Seats", data, errorMsg)
	}
}

// BookingsHandler lists seat reservations (GET /bookings)
func (s *Server) BookingsHandler() http.HandlerFunc {
	page := s.newPageRenderer("bookings.html")

	type bookingsData struct {
		Bookings []services.Booking
		Status   string
		Search   string
		Nav      pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filters := services.BookingFilters{
			Page:   currentPage(r),
			Search: r.URL.Query().Get("search"),
			Status: r.URL.Query().Get("status"),
		}

		data := bookingsData{Status: filters.Status, Search: filters.Search}
		errorMsg := ""

		res, err := s.bookings.List(r.Context(), filters)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list bookings")
			errorMsg = "Failed to load bookings"
		} else {
			data.Bookings = res.Results
			data.Nav = newPageNav(filters.Page, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "bookings", "Bookings", data, errorMsg)
	}
}

// LuggageHandler lists the chargeable luggage categories (GET /luggage)
func (s *Server) LuggageHandler() http.HandlerFunc {
	page := s.newPageRenderer("luggage.html")

	type luggageData struct {
		LuggageTypes []services.LuggageType
		Search       string
		Nav          pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		pageNum := currentPage(r)
		search := r.URL.Query().Get("search")

		data := luggageData{Search: search}
		errorMsg := ""

		res, err := s.luggage.List(r.Context(), pageNum, search, nil)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list luggage types")
			errorMsg = "Failed to load luggage types"
		} else {
			data.LuggageTypes = res.Results
			data.Nav = newPageNav(pageNum, res.Count, res.Previous, res.Next)
		}

		s.renderPage(w, r, page, "luggage", "Luggage Types", data, errorMsg)
	}
}

// AgentsHandler lists sales agents with the review summary (GET /agents)
func (s *Server) AgentsHandler() http.HandlerFunc {
	page := s.newPageRenderer("agents.html")

	type agentsData struct {
		Agents []services.Agent
		Stats  *services.AgentStats
		Status string
		Search string
		Nav    pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filters := services.AgentFilters{
			Page:   currentPage(r),
			Search: r.URL.Query().Get("search"),
			Status: r.URL.Query().Get("status"),
			Region: r.URL.Query().Get("region"),
		}

		data := agentsData{Status: filters.Status, Search: filters.Search}
		errorMsg := ""

		res, err := s.agents.List(r.Context(), filters)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Msg("Failed to list agents")
			errorMsg = "Failed to load agents"
		} else {
			data.Agents = res.Results
			data.Nav = newPageNav(filters.Page, res.Count, res.Previous, res.Next)
		}

		if stats, err := s.agents.Stats(r.Context()); err == nil {
			data.Stats = stats
		} else if redirectIfSignedOut(w, r, err) {
			return
		}

		s.renderPage(w, r, page, "agents", "Agents", data, errorMsg)
	}
}

// AgentDetailHandler renders one agent application with its booking history
// (GET /agents/{id})
func (s *Server) AgentDetailHandler() http.HandlerFunc {
	page := s.newPageRenderer("agent_detail.html")

	type agentDetailData struct {
		Agent    *services.Agent
		Bookings []services.AgentBooking
		Nav      pageNav
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		agent, err := s.agents.Get(r.Context(), id)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Str("agent", id).Msg("Failed to load agent")
			s.renderPage(w, r, page, "agents", "Agent", agentDetailData{}, "Failed to load agent")
			return
		}

		data := agentDetailData{Agent: agent}
		errorMsg := ""

		pageNum := currentPage(r)
		bookings, err := s.agents.Bookings(r.Context(), id, pageNum)
		if err != nil {
			if redirectIfSignedOut(w, r, err) {
				return
			}
			log.Err(err).Str("agent", id).Msg("Failed to load agent bookings")
			errorMsg = "Failed to load agent bookings"
		} else {
			data.Bookings = bookings.Results
			data.Nav = newPageNav(pageNum, bookings.Count, bookings.Previous, bookings.Next)
		}

		s.renderPage(w, r, page, "agents", "Agent "+agent.ReferenceNumber, data, errorMsg)
	}
}

// ProfileHandler renders the signed-in operator's identity and the manual
// session-refresh control (GET /profile). Token values are never rendered;
// the page shows only the access token's expiry hint when one can be read.
func (s *Server) ProfileHandler() http.HandlerFunc {
	page := s.newPageRenderer("profile.html")

	type profileData struct {
		Session    *session.Session
		Expiry     string
		HasExpiry  bool
		RefreshDue bool
		CanRefresh bool
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())

		data := profileData{Session: sess}
		if sess != nil {
			data.CanRefresh = sess.RefreshToken != ""
			data.RefreshDue = sess.RefreshDue(10*time.Minute, time.Now())
			if expiry, ok := sess.AccessTokenExpiry(); ok {
				data.HasExpiry = true
				data.Expiry = expiry.Format("2006-01-02 15:04:05 MST")
			}
		}

		s.renderPage(w, r, page, "profile", "Profile", data, "")
	}
}

// AgentRegisterPageHandler renders the public agent application form
// (GET /agents/register)
func (s *Server) AgentRegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("agent_register.html")
	if err != nil {
		panic("Failed to parse agent register template: " + err.Error())
	}

	type registerData struct {
		AppName   string
		Error     string
		Msg       string
		Reference string
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := registerData{
			AppName:   s.config.GetAppName(),
			Error:     r.URL.Query().Get("error"),
			Msg:       r.URL.Query().Get("msg"),
			Reference: r.URL.Query().Get("ref"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render agent register template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}
