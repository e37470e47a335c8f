package service

import (
	"Echoo/internal/fotoowl"
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// Лёгкие моки репозиториев для тестов сервисов.

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUserFields(ctx context.Context, id int64, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) CreateWithSelfie(ctx context.Context, img *model.Image, selfie bool) error {
	return m.Called(ctx, img, selfie).Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*model.Image, error) {
	args := m.Called(ctx, id, userID)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) UpdateWithSelfie(ctx context.Context, id int64, updates map[string]any, selfie bool) (*model.Image, error) {
	args := m.Called(ctx, id, updates, selfie)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) ListByUser(ctx context.Context, userID int64, f repo.ImageFilter) ([]model.Image, error) {
	args := m.Called(ctx, userID, f)
	if v, ok := args.Get(0).([]model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) ListByEvent(ctx context.Context, fotoowlEventID int64, limit, offset int) ([]model.Image, error) {
	args := m.Called(ctx, fotoowlEventID, limit, offset)
	if v, ok := args.Get(0).([]model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) GetByFotoowlEventID(ctx context.Context, fotoowlEventID int64) (*model.Event, error) {
	args := m.Called(ctx, fotoowlEventID)
	if v, ok := args.Get(0).(*model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	args := m.Called(ctx, limit, offset)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.EventRepository = (*mockEventRepo)(nil)

type mockMappingRepo struct{ mock.Mock }

func (m *mockMappingRepo) Create(ctx context.Context, rec *model.EventRequestMapping) (*model.EventRequestMapping, error) {
	args := m.Called(ctx, rec)
	if v, ok := args.Get(0).(*model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepo) GetByUserAndEvent(ctx context.Context, userID, fotoowlEventID int64) (*model.EventRequestMapping, error) {
	args := m.Called(ctx, userID, fotoowlEventID)
	if v, ok := args.Get(0).(*model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepo) ListByUser(ctx context.Context, userID int64) ([]model.EventRequestMapping, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.EventRequestMapping); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMappingRepo) ListRegisteredEvents(ctx context.Context, userID int64) ([]repo.RegisteredEvent, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]repo.RegisteredEvent); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MappingRepository = (*mockMappingRepo)(nil)

type mockProvider struct{ mock.Mock }

func (m *mockProvider) CreateRequest(ctx context.Context, eventID int64, eventKey, selfieURL string) (*fotoowl.RegisterResult, error) {
	args := m.Called(ctx, eventID, eventKey, selfieURL)
	if v, ok := args.Get(0).(*fotoowl.RegisterResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ EventProvider = (*mockProvider)(nil)
