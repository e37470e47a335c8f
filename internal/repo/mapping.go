package repo

import (
	"Echoo/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// RegisteredEvent — проекция регистрации, дополненная данными события.
// Событийная часть nullable: записи о событии может не быть в каталоге.
type RegisteredEvent struct {
	RegistrationID int64      `gorm:"column:registration_id"`
	FotoowlEventID int64      `gorm:"column:fotoowl_event_id"`
	RequestID      int64      `gorm:"column:request_id"`
	RequestKey     string     `gorm:"column:request_key"`
	RedirectURL    *string    `gorm:"column:redirect_url"`
	RegisteredAt   time.Time  `gorm:"column:registered_at"`
	EventID        *int64     `gorm:"column:event_id"`
	EventName      *string    `gorm:"column:event_name"`
	EventDesc      *string    `gorm:"column:event_description"`
	EventCoverURL  *string    `gorm:"column:event_cover_image_url"`
	EventDate      *time.Time `gorm:"column:event_date"`
	EventKey       *string    `gorm:"column:fotoowl_event_key"`
}

// MappingRepository — контракт доступа к регистрациям (event_request_mapping).
type MappingRepository interface {
	// Create вставляет регистрацию. Дубликат пары (user, event)
	// возвращает ошибку уникального индекса.
	Create(ctx context.Context, m *model.EventRequestMapping) (*model.EventRequestMapping, error)

	// GetByUserAndEvent ищет регистрацию пары (user, event).
	GetByUserAndEvent(ctx context.Context, userID, fotoowlEventID int64) (*model.EventRequestMapping, error)

	// ListByUser возвращает регистрации пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]model.EventRequestMapping, error)

	// ListRegisteredEvents возвращает регистрации пользователя,
	// дополненные данными события (left join), новые первыми.
	ListRegisteredEvents(ctx context.Context, userID int64) ([]RegisteredEvent, error)
}

type mappingRepo struct {
	db *gorm.DB
}

// NewMappingRepository создаёт реализацию репозитория для EventRequestMapping.
func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepo{db: db}
}

func (r *mappingRepo) Create(ctx context.Context, m *model.EventRequestMapping) (*model.EventRequestMapping, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *mappingRepo) GetByUserAndEvent(ctx context.Context, userID, fotoowlEventID int64) (*model.EventRequestMapping, error) {
	var m model.EventRequestMapping
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fotoowl_event_id = ?", userID, fotoowlEventID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mappingRepo) ListByUser(ctx context.Context, userID int64) ([]model.EventRequestMapping, error) {
	var list []model.EventRequestMapping
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mappingRepo) ListRegisteredEvents(ctx context.Context, userID int64) ([]RegisteredEvent, error) {
	var rows []RegisteredEvent
	err := r.db.WithContext(ctx).
		Table("event_request_mapping AS erm").
		Select(`erm.id AS registration_id,
			erm.fotoowl_event_id AS fotoowl_event_id,
			erm.request_id AS request_id,
			erm.request_key AS request_key,
			erm.redirect_url AS redirect_url,
			erm.created_at AS registered_at,
			events.id AS event_id,
			events.name AS event_name,
			events.description AS event_description,
			events.cover_image_url AS event_cover_image_url,
			events.event_date AS event_date,
			events.fotoowl_event_key AS fotoowl_event_key`).
		Joins("LEFT JOIN events ON events.fotoowl_event_id = erm.fotoowl_event_id").
		Where("erm.user_id = ?", userID).
		Order("erm.created_at DESC, erm.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
