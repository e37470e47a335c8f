package model

import "time"

// EventRequestMapping связывает пользователя, событие и request,
// выданный провайдером при регистрации.
// Инвариант: не более одной записи на пару (user_id, fotoowl_event_id).
type EventRequestMapping struct {
	ID             int64  `gorm:"primaryKey"`
	UserID         int64  `gorm:"not null;index;uniqueIndex:idx_user_event"`
	FotoowlEventID int64  `gorm:"not null;index;uniqueIndex:idx_user_event"`
	RequestID      int64  `gorm:"not null"`
	RequestKey     string `gorm:"size:255;not null"`

	RedirectURL *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName сохраняет историческое имя таблицы.
func (EventRequestMapping) TableName() string {
	return "event_request_mapping"
}
