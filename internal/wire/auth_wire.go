package wire

import (
	"net/http"

	"store-rating/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authenticate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// any authenticated role
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/update-password", authHandler.UpdatePassword)
			r.Get("/me", authHandler.Me)
		})
	})
}
