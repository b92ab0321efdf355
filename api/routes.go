package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public portfolio/blog surface and the
// session-protected admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions *sessionManager) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(httpLoggingMiddleware)

		// Portfolio endpoints
		r.Get("/", handlers.portfolioHandler.home())
		r.Get("/resume", handlers.portfolioHandler.resume())
		r.Post("/contact", handlers.portfolioHandler.contact())
		r.Get("/download-resume", handlers.portfolioHandler.downloadResume())

		// Blog endpoints
		r.Get("/blog", handlers.blogHandler.list())
		r.Get("/blog/category/{slug}", handlers.blogHandler.byCategory())
		r.Get("/blog/tag/{slug}", handlers.blogHandler.byTag())
		r.Get("/blog/{slug}", handlers.blogHandler.detail())

		// Uploaded media
		r.Get("/uploads/{fileType}/{filename}", handlers.filesHandler.serve())

		// Course checkout endpoints
		r.Get("/courses", handlers.paymentHandler.listCourses())
		r.Post("/course/payment/create-order", handlers.paymentHandler.createOrder())
		r.Post("/course/payment/verify", handlers.paymentHandler.verifyPayment())
		r.Post("/course/check-subscription", handlers.paymentHandler.checkSubscription())

		// Login is the only unauthenticated admin endpoint
		r.Post("/admin/login", handlers.adminHandler.login())
	})

	// Admin routes behind the session cookie
	r.Group(func(r chi.Router) {
		r.Use(httpLoggingMiddleware)
		r.Use(sessions.require)

		r.Get("/admin/logout", handlers.adminHandler.logout())
		r.Get("/admin/dashboard", handlers.adminHandler.dashboard())

		r.Get("/admin/posts", handlers.adminHandler.listPosts())
		r.Post("/admin/posts", handlers.adminHandler.createPost())
		r.Get("/admin/posts/{postID}", handlers.adminHandler.getPost())
		r.Put("/admin/posts/{postID}", handlers.adminHandler.updatePost())
		r.Delete("/admin/posts/{postID}", handlers.adminHandler.deletePost())

		r.Get("/admin/categories", handlers.adminHandler.listCategories())
		r.Post("/admin/categories", handlers.adminHandler.createCategory())
		r.Delete("/admin/categories/{categoryID}", handlers.adminHandler.deleteCategory())

		r.Get("/admin/tags", handlers.adminHandler.listTags())
		r.Post("/admin/tags", handlers.adminHandler.createTag())
		r.Delete("/admin/tags/{tagID}", handlers.adminHandler.deleteTag())

		r.Post("/admin/uploads/{fileType}", handlers.filesHandler.upload())
	})
}
