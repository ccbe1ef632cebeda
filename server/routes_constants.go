package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login, Logout & Session Refresh
	RouteLogin       = "/login"
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthRefresh = "/auth/refresh"

	// Console Routes
	RouteDashboard = "/"
	RouteClients   = "/clients"
	RouteBuses     = "/buses"
	RouteRoutes    = "/routes"
	RouteTrips     = "/trips"
	RouteTripSeats = "/trips/{id}/seats"
	RouteBookings  = "/bookings"
	RouteLuggage   = "/luggage"
	RouteAgents    = "/agents"
	RouteAgent     = "/agents/{id}"
	RouteProfile   = "/profile"

	// Form Routes
	RouteBusCreate     = "/buses/create"
	RouteBusDelete     = "/buses/{id}/delete"
	RouteRouteCreate   = "/routes/create"
	RouteRouteDelete   = "/routes/{id}/delete"
	RouteTripCreate    = "/trips/create"
	RouteTripDelete    = "/trips/{id}/delete"
	RouteBookingCancel = "/bookings/{id}/cancel"
	RouteBookingDelete = "/bookings/{id}/delete"
	RouteLuggageCreate = "/luggage/create"
	RouteLuggageDelete = "/luggage/{id}/delete"
	RouteAgentApprove  = "/agents/{id}/approve"
	RouteAgentReject   = "/agents/{id}/reject"

	// Public Routes
	RouteAgentRegister = "/agents/register"
	RouteHealthz       = "/healthz"
)
