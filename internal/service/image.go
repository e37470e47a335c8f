package service

import (
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ImageService — операции над каталогом изображений.
type ImageService struct {
	images repo.ImageRepository
}

func NewImageService(images repo.ImageRepository) *ImageService {
	return &ImageService{images: images}
}

// CreateImageParams — входные данные внутреннего создания изображения.
type CreateImageParams struct {
	Name           string
	UserID         *int64
	IsSelfie       bool
	FotoowlImageID *int64
	FotoowlURL     *string
	FilecoinURL    *string
	FilecoinCID    *string
	Size           *int64
	Height         *int
	Width          *int
	Description    *string
	ImageEncoding  *string
	EventID        *int64
}

// Create создаёт изображение. Обязателен name и хотя бы один из
// user_id/event_id. При IsSelfie селфи-поля владельца обновляются
// в той же транзакции.
func (s *ImageService) Create(ctx context.Context, p CreateImageParams) (*model.Image, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.UserID == nil && p.EventID == nil {
		return nil, fmt.Errorf("%w: either user_id or event_id must be provided", ErrValidation)
	}

	img := &model.Image{
		Name:           p.Name,
		UserID:         p.UserID,
		FotoowlImageID: p.FotoowlImageID,
		FotoowlURL:     p.FotoowlURL,
		FilecoinURL:    p.FilecoinURL,
		FilecoinCID:    p.FilecoinCID,
		Size:           p.Size,
		Height:         p.Height,
		Width:          p.Width,
		Description:    p.Description,
		ImageEncoding:  p.ImageEncoding,
		EventID:        p.EventID,
	}
	if err := s.images.CreateWithSelfie(ctx, img, p.IsSelfie); err != nil {
		return nil, err
	}
	return img, nil
}

// Get возвращает изображение по ID без проверки владельца (внутренний API).
func (s *ImageService) Get(ctx context.Context, id int64) (*model.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return nil, err
	}
	return img, nil
}

// UpdateImageParams — частичное обновление: меняются только заданные поля.
type UpdateImageParams struct {
	Name           *string
	UserID         *int64
	IsSelfie       bool
	FotoowlImageID *int64
	FotoowlURL     *string
	FilecoinURL    *string
	FilecoinCID    *string
	Size           *int64
	Height         *int
	Width          *int
	Description    *string
	ImageEncoding  *string
	EventID        *int64
}

// Update применяет частичное обновление изображения.
// При IsSelfie владелец обязан существовать, иначе ErrNotFound.
func (s *ImageService) Update(ctx context.Context, id int64, p UpdateImageParams) (*model.Image, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.UserID != nil {
		updates["user_id"] = *p.UserID
	}
	if p.FotoowlImageID != nil {
		updates["fotoowl_image_id"] = *p.FotoowlImageID
	}
	if p.FotoowlURL != nil {
		updates["fotoowl_url"] = *p.FotoowlURL
	}
	if p.FilecoinURL != nil {
		updates["filecoin_url"] = *p.FilecoinURL
	}
	if p.FilecoinCID != nil {
		updates["filecoin_cid"] = *p.FilecoinCID
	}
	if p.Size != nil {
		updates["size"] = *p.Size
	}
	if p.Height != nil {
		updates["height"] = *p.Height
	}
	if p.Width != nil {
		updates["width"] = *p.Width
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.ImageEncoding != nil {
		updates["image_encoding"] = *p.ImageEncoding
	}
	if p.EventID != nil {
		updates["event_id"] = *p.EventID
	}

	img, err := s.images.UpdateWithSelfie(ctx, id, updates, p.IsSelfie)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return nil, err
	}
	return img, nil
}

// GetForUser возвращает изображение, только если им владеет userID.
func (s *ImageService) GetForUser(ctx context.Context, id, userID int64) (*model.Image, error) {
	img, err := s.images.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: image %d", ErrNotFound, id)
		}
		return nil, err
	}
	return img, nil
}

// ListImagesParams — фильтры пользовательского листинга.
type ListImagesParams struct {
	EventID *int64
	Limit   *int // 1..100
	Offset  int
}

// ListForUser возвращает изображения пользователя, новые первыми.
func (s *ImageService) ListForUser(ctx context.Context, userID int64, p ListImagesParams) ([]model.Image, error) {
	if p.Limit != nil && (*p.Limit < 1 || *p.Limit > 100) {
		return nil, fmt.Errorf("%w: limit must be between 1 and 100", ErrValidation)
	}
	if p.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", ErrValidation)
	}

	f := repo.ImageFilter{EventID: p.EventID, Offset: p.Offset}
	if p.Limit != nil {
		f.Limit = *p.Limit
	}
	return s.images.ListByUser(ctx, userID, f)
}
