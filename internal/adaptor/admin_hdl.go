package adaptor

import (
	"net/http"

	"store-rating/internal/dto/request"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", resp)
}

// CreateStore handles POST /api/admin/stores
func (h *AdminHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.CreateStore(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create store")
		return
	}

	utils.ResponseCreated(w, "Store and owner created successfully", resp)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := request.ParseUserListQuery(r.URL.Query())

	resp, err := h.service.ListUsers(r.Context(), &q)
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", resp)
}

// ListStores handles GET /api/admin/stores
func (h *AdminHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	q := request.ParseStoreListQuery(r.URL.Query())

	resp, err := h.service.ListStores(r.Context(), &q)
	if err != nil {
		handleServiceError(h.log, w, err, "list stores")
		return
	}

	utils.ResponseSuccess(w, "Stores retrieved successfully", resp)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "Dashboard stats retrieved successfully", resp)
}
