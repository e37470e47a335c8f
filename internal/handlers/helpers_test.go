package handlers_test

import (
	"Echoo/internal/config"
	"Echoo/internal/fotoowl"
	"Echoo/internal/handlers"
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"Echoo/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Local light mocks

type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) UpdateUserFields(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockImageRepo struct{ mock.Mock }

func (m *hMockImageRepo) CreateWithSelfie(ctx context.Context, img *model.Image, selfie bool) error {
	return m.Called(ctx, img, selfie).Error(0)
}
func (m *hMockImageRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*model.Image, error) {
	args := m.Called(ctx, id, userID)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) UpdateWithSelfie(ctx context.Context, id int64, updates map[string]any, selfie bool) (*model.Image, error) {
	args := m.Called(ctx, id, updates, selfie)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) ListByUser(ctx context.Context, userID int64, f repo.ImageFilter) ([]model.Image, error) {
	args := m.Called(ctx, userID, f)
	if v, ok := args.Get(0).([]model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) ListByEvent(ctx context.Context, fotoowlEventID int64, limit, offset int) ([]model.Image, error) {
	args := m.Called(ctx, fotoowlEventID, limit, offset)
	if v, ok := args.Get(0).([]model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ImageRepository = (*hMockImageRepo)(nil)

type hMockEventRepo struct{ mock.Mock }

func (m *hMockEventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockEventRepo) GetByFotoowlEventID(ctx context.Context, fotoowlEventID int64) (*model.Event, error) {
	args := m.Called(ctx, fotoowlEventID)
	if v, ok := args.Get(0).(*model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockEventRepo) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	args := m.Called(ctx, limit, offset)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.EventRepository = (*hMockEventRepo)(nil)

type hMockMappingRepo struct{ mock.Mock }

func (m *hMockMappingRepo) Create(ctx context.Context, rec *model.EventRequestMapping) (*model.EventRequestMapping, error) {
	args := m.Called(ctx, rec)
	if v, ok := args.Get(0).(*model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockMappingRepo) GetByUserAndEvent(ctx context.Context, userID, fotoowlEventID int64) (*model.EventRequestMapping, error) {
	args := m.Called(ctx, userID, fotoowlEventID)
	if v, ok := args.Get(0).(*model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockMappingRepo) ListByUser(ctx context.Context, userID int64) ([]model.EventRequestMapping, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockMappingRepo) ListRegisteredEvents(ctx context.Context, userID int64) ([]repo.RegisteredEvent, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]repo.RegisteredEvent); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MappingRepository = (*hMockMappingRepo)(nil)

type hMockProvider struct{ mock.Mock }

func (m *hMockProvider) CreateRequest(ctx context.Context, eventID int64, eventKey, selfieURL string) (*fotoowl.RegisterResult, error) {
	args := m.Called(ctx, eventID, eventKey, selfieURL)
	if v, ok := args.Get(0).(*fotoowl.RegisterResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ service.EventProvider = (*hMockProvider)(nil)

// testMocks — все репозитории роутера, собранного для теста.
type testMocks struct {
	users    *hMockUserRepo
	images   *hMockImageRepo
	events   *hMockEventRepo
	mappings *hMockMappingRepo
	provider *hMockProvider
}

func newTestRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()
	cfg := &config.Config{
		Environment:      "test",
		InternalUsername: "svc",
		InternalPassword: "svc-pass",
	}
	logger := zap.NewNop().Sugar()

	m := &testMocks{
		users:    &hMockUserRepo{},
		images:   &hMockImageRepo{},
		events:   &hMockEventRepo{},
		mappings: &hMockMappingRepo{},
		provider: &hMockProvider{},
	}

	userSvc := service.NewUserService(m.users)
	imageSvc := service.NewImageService(m.images)
	eventSvc := service.NewEventService(m.events, m.mappings, m.images, m.provider)

	h := handlers.NewHandler(userSvc, imageSvc, eventSvc, logger, cfg)
	return h.Router, m
}

// seedUser регистрирует в моке пользователя с bcrypt-хешем пароля,
// чтобы Basic-аутентификация проходила как в бою.
func seedUser(t *testing.T, users *hMockUserRepo, u *model.User, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u.PasswordHash = string(hash)
	users.On("GetUserByUsername", mock.Anything, u.Username).Return(u, nil)
}

// doJSON выполняет запрос с JSON-телом против роутера.
func doJSON(t *testing.T, router http.Handler, method, target string, body any, auth func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		auth(req)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func basicAuth(username, password string) func(*http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

// notFoundUser настраивает мок так, что любой незнакомый логин не находится.
func notFoundUser(users *hMockUserRepo, username string) {
	users.On("GetUserByUsername", mock.Anything, username).Return(nil, gorm.ErrRecordNotFound)
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "healthy", got["status"])
	require.Equal(t, "test", got["environment"])
}
