package wire

import (
	"net/http"

	"store-rating/internal/adaptor"
	"store-rating/internal/data/entity"
	"store-rating/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin))

		r.Post("/users", adminHandler.CreateUser)
		r.Get("/users", adminHandler.ListUsers)
		r.Post("/stores", adminHandler.CreateStore)
		r.Get("/stores", adminHandler.ListStores)
		r.Get("/stats", adminHandler.Stats)
	})
}
