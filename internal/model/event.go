package model

import "time"

// Event — публичное событие, заведённое у внешнего провайдера.
// FotoowlEventID/FotoowlEventKey выдаются провайдером и нужны для регистрации.
type Event struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null"`

	Description      *string `gorm:"type:text"`
	CoverImageURL    *string `gorm:"size:255"`
	CoverImageHeight *int
	CoverImageWidth  *int
	Location         *string `gorm:"size:255"`
	Category         *string `gorm:"size:255"`

	EventDate *time.Time `gorm:"type:date"`

	FotoowlEventID  *int64  `gorm:"uniqueIndex"`
	FotoowlEventKey *string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
