package model

import "time"

// User — учётная запись и профиль пользователя.
// Все поля профиля опциональны и заполняются через PUT /profile.
type User struct {
	ID           int64   `gorm:"primaryKey"`
	Username     string  `gorm:"size:50;uniqueIndex;not null"`
	Email        *string `gorm:"size:100"`
	PasswordHash string  `gorm:"size:255;not null"`

	// Селфи пользователя — референсное фото для матчинга у провайдера
	SelfieURL    *string `gorm:"size:500"`
	SelfieCID    *string `gorm:"column:selfie_cid;size:100"`
	SelfieHeight *int
	SelfieWidth  *int

	InstagramURL *string `gorm:"size:200"`
	TwitterURL   *string `gorm:"size:200"`
	LinkedinURL  *string `gorm:"size:200"`
	Description  *string `gorm:"type:text"`
	Interests    *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
