package server

import "net/http"

// initRoutes registers every route. Each page and form handler runs behind
// the standard HTML chain plus the session guard; the guard itself decides
// which paths are public.
func (s *Server) initRoutes() {
	guarded := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, s.HTMLMiddleware(s.SessionGuard())...)
	}

	// Auth
	s.RegisterRouteFunc("GET "+RouteLogin, guarded(s.LoginPageHandler()))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, guarded(s.LoginSubmissionHandler()))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, guarded(s.LogoutHandler()))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, guarded(s.RefreshHandler()))

	// Console pages
	s.RegisterRouteFunc("GET "+RouteDashboard+"{$}", guarded(s.DashboardHandler()))
	s.RegisterRouteFunc("GET "+RouteClients, guarded(s.ClientsHandler()))
	s.RegisterRouteFunc("GET "+RouteBuses, guarded(s.BusesHandler()))
	s.RegisterRouteFunc("GET "+RouteRoutes, guarded(s.RoutesHandler()))
	s.RegisterRouteFunc("GET "+RouteTrips, guarded(s.TripsHandler()))
	s.RegisterRouteFunc("GET "+RouteTripSeats, guarded(s.TripSeatsHandler()))
	s.RegisterRouteFunc("GET "+RouteBookings, guarded(s.BookingsHandler()))
	s.RegisterRouteFunc("GET "+RouteLuggage, guarded(s.LuggageHandler()))
	s.RegisterRouteFunc("GET "+RouteAgents, guarded(s.AgentsHandler()))
	s.RegisterRouteFunc("GET "+RouteAgent, guarded(s.AgentDetailHandler()))
	s.RegisterRouteFunc("GET "+RouteProfile, guarded(s.ProfileHandler()))

	// Forms
	s.RegisterRouteFunc("POST "+RouteBusCreate, guarded(s.BusCreateHandler()))
	s.RegisterRouteFunc("POST "+RouteBusDelete, guarded(s.BusDeleteHandler()))
	s.RegisterRouteFunc("POST "+RouteRouteCreate, guarded(s.RouteCreateHandler()))
	s.RegisterRouteFunc("POST "+RouteRouteDelete, guarded(s.RouteDeleteHandler()))
	s.RegisterRouteFunc("POST "+RouteTripCreate, guarded(s.TripCreateHandler()))
	s.RegisterRouteFunc("POST "+RouteTripDelete, guarded(s.TripDeleteHandler()))
	s.RegisterRouteFunc("POST "+RouteBookingCancel, guarded(s.BookingCancelHandler()))
	s.RegisterRouteFunc("POST "+RouteBookingDelete, guarded(s.BookingDeleteHandler()))
	s.RegisterRouteFunc("POST "+RouteLuggageCreate, guarded(s.LuggageCreateHandler()))
	s.RegisterRouteFunc("POST "+RouteLuggageDelete, guarded(s.LuggageDeleteHandler()))
	s.RegisterRouteFunc("POST "+RouteAgentApprove, guarded(s.AgentApproveHandler()))
	s.RegisterRouteFunc("POST "+RouteAgentReject, guarded(s.AgentRejectHandler()))

	// Public
	s.RegisterRouteFunc("GET "+RouteAgentRegister, guarded(s.AgentRegisterPageHandler()))
	s.RegisterRouteFunc("POST "+RouteAgentRegister, guarded(s.AgentRegisterSubmissionHandler()))
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}

// HealthzHandler answers liveness probes without touching the session store
// or the booking API.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
