package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Image — запись каталога изображений.
// UserID и EventID оба nullable: фото может принадлежать пользователю,
// событию или обоим сразу.
type Image struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null"`

	UserID *int64 `gorm:"index"`

	FotoowlImageID *int64
	FotoowlURL     *string `gorm:"size:255"`
	FilecoinURL    *string `gorm:"size:255"`
	FilecoinCID    *string `gorm:"column:filecoin_cid;size:255"`

	Size   *int64
	Height *int
	Width  *int

	Description   *string `gorm:"size:512"`
	ImageEncoding *string `gorm:"size:512"`

	// Эмбеддинги фиксированной размерности (pgvector)
	DescriptionVector *pgvector.Vector `gorm:"type:vector(512)"`
	ImageVector       *pgvector.Vector `gorm:"type:vector(512)"`

	// Внешний (fotoowl) идентификатор события, с которым связано фото
	EventID *int64 `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DisplayURL возвращает единственный URL для отдачи клиенту:
// приоритет у filecoin_url, затем fotoowl_url; если оба пусты — nil.
func (i *Image) DisplayURL() *string {
	if i.FilecoinURL != nil && *i.FilecoinURL != "" {
		return i.FilecoinURL
	}
	if i.FotoowlURL != nil && *i.FotoowlURL != "" {
		return i.FotoowlURL
	}
	return nil
}
