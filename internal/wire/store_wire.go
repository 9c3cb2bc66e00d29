package wire

import (
	"net/http"

	"store-rating/internal/adaptor"
	"store-rating/internal/data/entity"
	"store-rating/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStore(
	r chi.Router,
	storeHandler *adaptor.StoreHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/stores", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", storeHandler.List)
		r.With(middleware.RequireRoles(log, entity.RoleNormalUser)).
			Post("/{storeId}/rate", storeHandler.Rate)
		r.With(middleware.RequireRoles(log, entity.RoleStoreOwner)).
			Get("/owner/dashboard", storeHandler.OwnerDashboard)
	})
}
