package api

import (
	"github.com/agrimgupta/portfolio-blog-backend/config"
	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, gateway services.OrderGateway, media *services.MediaStore, sessions *sessionManager) *routeHandlers {
	lifecycle := services.NewLifecycle(database.PostRepo())
	payments := services.NewPaymentService(
		config.GetString(c, "RAZORPAY_KEY_ID", ""),
		config.GetString(c, "RAZORPAY_KEY_SECRET", ""),
		database.CourseRepo(),
		database.SubscriptionRepo(),
		gateway,
	)

	publicPerPage := config.GetInt(c, "POSTS_PER_PAGE", 6)
	adminPerPage := config.GetInt(c, "ADMIN_POSTS_PER_PAGE", 20)

	return &routeHandlers{
		portfolioHandler: newPortfolioHandler(database.ProfileRepo(), media),
		blogHandler:      newBlogHandler(database.PostRepo(), database.CategoryRepo(), database.TagRepo(), lifecycle, publicPerPage),
		adminHandler:     newAdminHandler(database, lifecycle, sessions, media, adminPerPage),
		paymentHandler:   newPaymentHandler(database.CourseRepo(), payments),
		filesHandler:     newFilesHandler(media),
	}
}
