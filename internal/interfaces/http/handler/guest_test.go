package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	guestapp "github.com/hoteldesk/backend/internal/application/guest"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

type mockGuestRepository struct {
	mock.Mock
}

func (m *mockGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*guest.Guest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuestRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, id)
	if g := args.Get(0); g != nil {
		return g.(*guest.Guest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuestRepository) FindByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, docValue)
	if g := args.Get(0); g != nil {
		return g.(*guest.Guest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuestRepository) FindByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, phone)
	if g := args.Get(0); g != nil {
		return g.(*guest.Guest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGuestRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]guest.Guest, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]guest.Guest), args.Error(1)
}

func (m *mockGuestRepository) FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]guest.Guest, error) {
	args := m.Called(ctx, propertyID, ids)
	return args.Get(0).([]guest.Guest), args.Error(1)
}

func (m *mockGuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockGuestRepository) SaveWithLock(ctx context.Context, g *guest.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockGuestRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	args := m.Called(ctx, propertyID, id)
	return args.Error(0)
}

func (m *mockGuestRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGuestRepository) ExistsByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (bool, error) {
	args := m.Called(ctx, propertyID, docValue)
	return args.Bool(0), args.Error(1)
}

func setupGuestRouter(t *testing.T, repo *mockGuestRepository, propertyID uuid.UUID) *gin.Engine {
	t.Helper()
	engine := gin.New()
	engine.Use(authInjector(propertyID, uuid.New()))

	h := NewGuestHandler(guestapp.NewGuestService(repo))
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestGuestHandler_Create(t *testing.T) {
	repo := new(mockGuestRepository)
	propertyID := uuid.New()
	engine := setupGuestRouter(t, repo, propertyID)

	repo.On("ExistsByDocument", mock.Anything, propertyID, "952641870V").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*guest.Guest")).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"full_name": "Nadeesha Perera",
		"documents": []map[string]string{{"type": "nic", "value": "952641870V"}},
		"phone":     "+94771234567",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Nadeesha Perera", data["full_name"])
	repo.AssertExpectations(t)
}

func TestGuestHandler_Create_MissingRequiredFields(t *testing.T) {
	repo := new(mockGuestRepository)
	engine := setupGuestRouter(t, repo, uuid.New())

	body, _ := json.Marshal(map[string]string{"phone": "+94771234567"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	repo.AssertNotCalled(t, "Save")
}

func TestGuestHandler_GetByID(t *testing.T) {
	repo := new(mockGuestRepository)
	propertyID := uuid.New()
	engine := setupGuestRouter(t, repo, propertyID)

	g, err := guest.NewGuest(propertyID, "Ruwan Silva", []guest.Document{{Type: guest.DocumentTypePassport, Value: "N1234567"}})
	require.NoError(t, err)

	repo.On("FindByIDForProperty", mock.Anything, propertyID, g.ID).Return(g, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests/"+g.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Ruwan Silva", data["full_name"])
}

func TestGuestHandler_GetByID_NotFound(t *testing.T) {
	repo := new(mockGuestRepository)
	propertyID := uuid.New()
	engine := setupGuestRouter(t, repo, propertyID)

	missing := uuid.New()
	repo.On("FindByIDForProperty", mock.Anything, propertyID, missing).Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests/"+missing.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestGuestHandler_GetByID_InvalidUUID(t *testing.T) {
	repo := new(mockGuestRepository)
	engine := setupGuestRouter(t, repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuestHandler_List_WithPaginationMeta(t *testing.T) {
	repo := new(mockGuestRepository)
	propertyID := uuid.New()
	engine := setupGuestRouter(t, repo, propertyID)

	g, err := guest.NewGuest(propertyID, "Kamal Fernando", []guest.Document{{Type: guest.DocumentTypeNIC, Value: "881234567V"}})
	require.NoError(t, err)

	repo.On("FindAllForProperty", mock.Anything, propertyID, mock.Anything).Return([]guest.Guest{*g}, nil)
	repo.On("CountForProperty", mock.Anything, propertyID, mock.Anything).Return(int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests?page=1&page_size=10", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestGuestHandler_Unauthenticated(t *testing.T) {
	engine := gin.New()
	h := NewGuestHandler(guestapp.NewGuestService(new(mockGuestRepository)))
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
