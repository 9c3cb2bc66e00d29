package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &usecase.Error{Kind: usecase.ErrValidation, Message: "Validation failed"}, http.StatusBadRequest, "Validation failed"},
		{"conflict", &usecase.Error{Kind: usecase.ErrConflict, Message: "User already exists"}, http.StatusBadRequest, "User already exists"},
		{"unauthenticated", &usecase.Error{Kind: usecase.ErrUnauthenticated, Message: "Invalid email or password"}, http.StatusUnauthorized, "Invalid email or password"},
		{"forbidden", &usecase.Error{Kind: usecase.ErrForbidden, Message: "Nope"}, http.StatusForbidden, "Nope"},
		{"not found", &usecase.Error{Kind: usecase.ErrNotFound, Message: "Store not found"}, http.StatusNotFound, "Store not found"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), rec, tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestHandleServiceError_DoesNotLeakCause(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, errors.New(`pq: relation "users" does not exist`), "test")

	assert.NotContains(t, rec.Body.String(), "relation")
}

// stubStoreService records the arguments it was called with.
type stubStoreService struct {
	usecase.StoreService
	rateUser  uuid.UUID
	rateStore uuid.UUID
	rateErr   error
}

func (s *stubStoreService) Rate(_ context.Context, userID, storeID uuid.UUID, req *request.RateStoreRequest) (*response.RatingResponse, error) {
	s.rateUser, s.rateStore = userID, storeID
	if s.rateErr != nil {
		return nil, s.rateErr
	}
	return &response.RatingResponse{ID: uuid.NewString(), Value: req.Value}, nil
}

func rateRouter(h *StoreHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/stores/{storeId}/rate", h.Rate)
	return r
}

func rateRequest(t *testing.T, userID uuid.UUID, storeID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/stores/"+storeID+"/rate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(utils.SetUserContext(req.Context(), userID, "NORMAL_USER"))
}

func TestStoreHandler_Rate(t *testing.T) {
	svc := &stubStoreService{}
	h := NewStoreHandler(svc, zap.NewNop())
	userID, storeID := uuid.New(), uuid.New()

	rec := httptest.NewRecorder()
	rateRouter(h).ServeHTTP(rec, rateRequest(t, userID, storeID.String(), `{"value":4}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, svc.rateUser)
	assert.Equal(t, storeID, svc.rateStore)
	assert.True(t, decodeEnvelope(t, rec).Status)
}

func TestStoreHandler_RateBadInput(t *testing.T) {
	h := NewStoreHandler(&stubStoreService{}, zap.NewNop())
	userID := uuid.New()

	tests := []struct {
		name    string
		storeID string
		body    string
		field   string
	}{
		{"bad store id", "not-a-uuid", `{"value":4}`, ""},
		{"malformed body", uuid.NewString(), `{"value":`, ""},
		{"value too high", uuid.NewString(), `{"value":6}`, "value"},
		{"missing value", uuid.NewString(), `{}`, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rateRouter(h).ServeHTTP(rec, rateRequest(t, userID, tt.storeID, tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			if tt.field != "" {
				require.Len(t, env.Errors, 1)
				assert.Equal(t, tt.field, env.Errors[0].Field)
			}
		})
	}
}

func TestStoreHandler_RateUnknownStore(t *testing.T) {
	svc := &stubStoreService{rateErr: &usecase.Error{Kind: usecase.ErrNotFound, Message: "Store not found"}}
	h := NewStoreHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	rateRouter(h).ServeHTTP(rec, rateRequest(t, uuid.New(), uuid.NewString(), `{"value":3}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type stubAdminService struct {
	usecase.AdminService
	lastUsers *request.UserListQuery
}

func (s *stubAdminService) ListUsers(_ context.Context, q *request.UserListQuery) (*response.PaginatedResponse[response.UserListItem], error) {
	s.lastUsers = q
	return response.NewPaginatedResponse[response.UserListItem](nil, q.Page, q.Limit, 0), nil
}

func TestAdminHandler_ListUsersParsesQuery(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?page=2&limit=5&sortBy=email&order=desc&role=STORE_OWNER&name=ann", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUsers)
	assert.Equal(t, 2, svc.lastUsers.Page)
	assert.Equal(t, 5, svc.lastUsers.Limit)
	assert.Equal(t, "email", svc.lastUsers.SortBy)
	assert.True(t, svc.lastUsers.Desc())
	assert.Equal(t, "STORE_OWNER", svc.lastUsers.Role)
	assert.Equal(t, "ann", svc.lastUsers.Name)
}

func TestAuthHandler_MeRequiresIdentity(t *testing.T) {
	h := NewAuthHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
