package adaptor

import (
	"errors"
	"net/http"

	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Admin *AdminHandler
	Store *StoreHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Admin: NewAdminHandler(service.Admin, log),
		Store: NewStoreHandler(service.Store, log),
	}
}

// handleServiceError maps service errors to responses. Anything that is not
// a *usecase.Error is logged and answered with a generic 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" rejected",
		zap.Error(err),
		zap.String("operation", operation))

	switch {
	case errors.Is(err, usecase.ErrValidation):
		if len(svcErr.Fields) > 0 {
			utils.ResponseValidation(w, svcErr.Fields)
			return
		}
		utils.ResponseBadRequest(w, svcErr.Message, nil)
	case errors.Is(err, usecase.ErrConflict):
		utils.ResponseBadRequest(w, svcErr.Message, nil)
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, svcErr.Message)
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, svcErr.Message)
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, svcErr.Message)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return false
	}
	return true
}
