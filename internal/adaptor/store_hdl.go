package adaptor

import (
	"net/http"

	"store-rating/internal/dto/request"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreHandler struct {
	service usecase.StoreService
	log     *zap.Logger
}

func NewStoreHandler(service usecase.StoreService, log *zap.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		log:     log.With(zap.String("handler", "store")),
	}
}

// List handles GET /api/stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	q := request.ParseStoreListQuery(r.URL.Query())
	// normal users cannot filter on store email
	q.Email = ""

	resp, err := h.service.ListForUser(r.Context(), userID, &q)
	if err != nil {
		handleServiceError(h.log, w, err, "list stores")
		return
	}

	utils.ResponseSuccess(w, "Stores retrieved successfully", resp)
}

// Rate handles POST /api/stores/{storeId}/rate
func (h *StoreHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	storeID, err := uuid.Parse(chi.URLParam(r, "storeId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid store ID", nil)
		return
	}

	var req request.RateStoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Rate(r.Context(), userID, storeID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "rate store")
		return
	}

	utils.ResponseCreated(w, "Rating submitted successfully", resp)
}

// OwnerDashboard handles GET /api/stores/owner/dashboard
func (h *StoreHandler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	q := request.ParseListQuery(r.URL.Query())

	resp, err := h.service.OwnerDashboard(r.Context(), ownerID, &q)
	if err != nil {
		handleServiceError(h.log, w, err, "get owner dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", resp)
}
