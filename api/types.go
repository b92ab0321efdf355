package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	portfolioHandler portfolioHandler
	blogHandler      blogHandler
	adminHandler     adminHandler
	paymentHandler   paymentHandler
	filesHandler     filesHandler
}
