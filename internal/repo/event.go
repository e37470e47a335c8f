package repo

import (
	"Echoo/internal/model"
	"context"

	"gorm.io/gorm"
)

// EventRepository — контракт доступа к событиям.
type EventRepository interface {
	// GetByID возвращает событие по первичному ключу.
	GetByID(ctx context.Context, id int64) (*model.Event, error)

	// GetByFotoowlEventID ищет событие по внешнему идентификатору провайдера.
	GetByFotoowlEventID(ctx context.Context, fotoowlEventID int64) (*model.Event, error)

	// List возвращает события по дате по убыванию; записи без даты в конце.
	// Limit <=0 отключает ограничение.
	List(ctx context.Context, limit, offset int) ([]model.Event, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepository создаёт реализацию репозитория для Event.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) GetByFotoowlEventID(ctx context.Context, fotoowlEventID int64) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).
		Where("fotoowl_event_id = ?", fotoowlEventID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	q := r.db.WithContext(ctx).Order("event_date DESC NULLS LAST, id DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []model.Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
