package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.OptionalAuthMiddleware)

		r.Get("/", ui.HandleEventList)
		r.Get("/login", ui.HandleLogin)
		r.Post("/login", ui.HandleLoginPost)
		r.Get("/register", ui.HandleRegister)
		r.Post("/register", ui.HandleRegisterPost)
		r.Get("/events/{id}", ui.HandleEventDetail)
	})

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Get("/logout", ui.HandleLogout)
		r.Get("/my", ui.HandleMyEvents)

		r.Get("/events/new", ui.HandleEventCreate)
		r.Post("/events/new", ui.HandleEventCreatePost)
		r.Post("/events/{id}/join", ui.HandleEventJoin)
		r.Post("/events/{id}/leave", ui.HandleEventLeave)

		// Admin routes (admin role required).
		r.Route("/admin", func(r chi.Router) {
			r.Use(ui.AdminMiddleware)
			r.Get("/pending", ui.HandleAdminPending)
			r.Post("/events/{id}/approve", ui.HandleAdminApprove)
			r.Post("/events/{id}/reject", ui.HandleAdminReject)
			r.Get("/users", ui.HandleAdminUsers)
			r.Post("/users/{id}/role", ui.HandleAdminSetRole)
		})
	})
}
