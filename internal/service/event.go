package service

import (
	"Echoo/internal/fotoowl"
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// EventProvider — внешний провайдер событий, выдающий request при регистрации.
type EventProvider interface {
	CreateRequest(ctx context.Context, eventID int64, eventKey, selfieURL string) (*fotoowl.RegisterResult, error)
}

// EventService — публичный каталог событий, регистрация и выборка
// сматченных изображений.
type EventService struct {
	events   repo.EventRepository
	mappings repo.MappingRepository
	images   repo.ImageRepository
	provider EventProvider
}

func NewEventService(events repo.EventRepository, mappings repo.MappingRepository, images repo.ImageRepository, provider EventProvider) *EventService {
	return &EventService{events: events, mappings: mappings, images: images, provider: provider}
}

// PublicList возвращает события по дате по убыванию, без аутентификации.
func (s *EventService) PublicList(ctx context.Context, limit *int, offset int) ([]model.Event, error) {
	if limit != nil && (*limit < 1 || *limit > 100) {
		return nil, fmt.Errorf("%w: limit must be between 1 and 100", ErrValidation)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", ErrValidation)
	}

	l := 0
	if limit != nil {
		l = *limit
	}
	return s.events.List(ctx, l, offset)
}

// PublicGet возвращает событие по первичному ключу.
func (s *EventService) PublicGet(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, id)
		}
		return nil, err
	}
	return event, nil
}

// Register регистрирует пользователя на событие провайдера и сохраняет
// выданный request. Повторная регистрация пары (user, event) — ErrConflict;
// гонку одновременных попыток закрывает уникальный индекс хранилища.
func (s *EventService) Register(ctx context.Context, user *model.User, fotoowlEventID int64) (*model.EventRequestMapping, error) {
	if _, err := s.mappings.GetByUserAndEvent(ctx, user.ID, fotoowlEventID); err == nil {
		return nil, fmt.Errorf("%w: already registered for event %d", ErrConflict, fotoowlEventID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user.SelfieURL == nil || *user.SelfieURL == "" {
		return nil, fmt.Errorf("%w: a selfie must be uploaded before registering for events", ErrValidation)
	}

	event, err := s.events.GetByFotoowlEventID(ctx, fotoowlEventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, fotoowlEventID)
		}
		return nil, err
	}
	if event.FotoowlEventKey == nil || *event.FotoowlEventKey == "" {
		return nil, fmt.Errorf("%w: event %d has no provider key", ErrNotFound, fotoowlEventID)
	}

	res, err := s.provider.CreateRequest(ctx, fotoowlEventID, *event.FotoowlEventKey, *user.SelfieURL)
	if err != nil {
		switch {
		case errors.Is(err, fotoowl.ErrUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		case errors.Is(err, fotoowl.ErrBadResponse):
			return nil, fmt.Errorf("%w: %v", ErrProviderResponse, err)
		default:
			return nil, err
		}
	}

	mapping, err := s.mappings.Create(ctx, &model.EventRequestMapping{
		UserID:         user.ID,
		FotoowlEventID: fotoowlEventID,
		RequestID:      res.RequestID,
		RequestKey:     res.RequestKey,
		RedirectURL:    res.RedirectURL,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: already registered for event %d", ErrConflict, fotoowlEventID)
		}
		return nil, err
	}
	return mapping, nil
}

// MyRegistrations возвращает регистрации пользователя, новые первыми.
func (s *EventService) MyRegistrations(ctx context.Context, userID int64) ([]model.EventRequestMapping, error) {
	return s.mappings.ListByUser(ctx, userID)
}

// GetRegistration возвращает регистрацию на конкретное событие.
func (s *EventService) GetRegistration(ctx context.Context, userID, fotoowlEventID int64) (*model.EventRequestMapping, error) {
	m, err := s.mappings.GetByUserAndEvent(ctx, userID, fotoowlEventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no registration for event %d", ErrNotFound, fotoowlEventID)
		}
		return nil, err
	}
	return m, nil
}

// RegisteredEvents возвращает регистрации пользователя с данными событий.
func (s *EventService) RegisteredEvents(ctx context.Context, userID int64) ([]repo.RegisteredEvent, error) {
	return s.mappings.ListRegisteredEvents(ctx, userID)
}

// MatchedImagesResult — результат выборки сматченных изображений.
// RequestID разрешён из регистрации пользователя, не из запроса клиента.
type MatchedImagesResult struct {
	RequestID int64
	Images    []model.Image
}

// MatchedImages возвращает страницу изображений события для пользователя.
// Страницы нумеруются с 1; pageSize == -1 отключает пагинацию и отдаёт всё.
// Отсутствие регистрации — ErrNotRegistered; страница за пределами данных —
// пустой список.
func (s *EventService) MatchedImages(ctx context.Context, userID, fotoowlEventID int64, page, pageSize int) (*MatchedImagesResult, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if pageSize == 0 || pageSize < -1 {
		return nil, fmt.Errorf("%w: page_size must be positive or -1", ErrValidation)
	}

	mapping, err := s.mappings.GetByUserAndEvent(ctx, userID, fotoowlEventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotRegistered, fotoowlEventID)
		}
		return nil, err
	}

	limit, offset := 0, 0
	if pageSize != -1 {
		// offset не должен переполняться: такая страница заведомо пуста
		if page-1 > math.MaxInt/pageSize {
			return &MatchedImagesResult{RequestID: mapping.RequestID, Images: []model.Image{}}, nil
		}
		limit = pageSize
		offset = (page - 1) * pageSize
	}

	images, err := s.images.ListByEvent(ctx, fotoowlEventID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &MatchedImagesResult{RequestID: mapping.RequestID, Images: images}, nil
}
