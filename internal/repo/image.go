package repo

import (
	"Echoo/internal/model"
	"context"

	"gorm.io/gorm"
)

// ImageFilter — параметры выборки пользовательских изображений.
type ImageFilter struct {
	EventID *int64
	Limit   int // <=0 — без ограничения
	Offset  int
}

// ImageRepository — контракт доступа к каталогу изображений.
type ImageRepository interface {
	// CreateWithSelfie создаёт изображение; при selfie=true и заданном
	// владельце в той же транзакции обновляет селфи-поля пользователя.
	CreateWithSelfie(ctx context.Context, img *model.Image, selfie bool) error

	// GetByID возвращает изображение по первичному ключу.
	GetByID(ctx context.Context, id int64) (*model.Image, error)

	// GetByIDForUser возвращает изображение, только если им владеет userID.
	GetByIDForUser(ctx context.Context, id, userID int64) (*model.Image, error)

	// UpdateWithSelfie обновляет перечисленные колонки; при selfie=true
	// переносит селфи-поля на владельца (отсутствие владельца в users —
	// gorm.ErrRecordNotFound). Возвращает свежую запись.
	UpdateWithSelfie(ctx context.Context, id int64, updates map[string]any, selfie bool) (*model.Image, error)

	// ListByUser возвращает изображения пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64, f ImageFilter) ([]model.Image, error)

	// ListByEvent возвращает изображения, помеченные внешним событием,
	// новые первыми. Limit <=0 отключает ограничение.
	ListByEvent(ctx context.Context, fotoowlEventID int64, limit, offset int) ([]model.Image, error)
}

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepository создаёт реализацию репозитория для Image.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) CreateWithSelfie(ctx context.Context, img *model.Image, selfie bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(img).Error; err != nil {
			return err
		}
		if selfie && img.UserID != nil {
			// Владелец мог ещё не существовать — молча пропускаем,
			// само изображение при этом сохраняется.
			return tx.Model(&model.User{}).Where("id = ?", *img.UserID).Updates(selfieColumns(img)).Error
		}
		return nil
	})
}

func (r *imageRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*model.Image, error) {
	var img model.Image
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) UpdateWithSelfie(ctx context.Context, id int64, updates map[string]any, selfie bool) (*model.Image, error) {
	var updated model.Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img model.Image
		if err := tx.First(&img, id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&img).Updates(updates).Error; err != nil {
				return err
			}
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		if selfie && updated.UserID != nil {
			res := tx.Model(&model.User{}).Where("id = ?", *updated.UserID).Updates(selfieColumns(&updated))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *imageRepo) ListByUser(ctx context.Context, userID int64, f ImageFilter) ([]model.Image, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.EventID != nil {
		q = q.Where("event_id = ?", *f.EventID)
	}
	q = q.Order("created_at DESC, id DESC")
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var images []model.Image
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepo) ListByEvent(ctx context.Context, fotoowlEventID int64, limit, offset int) ([]model.Image, error) {
	q := r.db.WithContext(ctx).
		Where("event_id = ?", fotoowlEventID).
		Order("created_at DESC, id DESC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var images []model.Image
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// selfieColumns — селфи-поля пользователя, производные от изображения.
func selfieColumns(img *model.Image) map[string]any {
	return map[string]any{
		"selfie_cid":    img.FilecoinCID,
		"selfie_url":    img.FilecoinURL,
		"selfie_height": img.Height,
		"selfie_width":  img.Width,
	}
}
