package service

import (
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestImageService_Create_Validation(t *testing.T) {
	s := NewImageService(&mockImageRepo{})
	ctx := context.Background()

	_, err := s.Create(ctx, CreateImageParams{})
	assert.ErrorIs(t, err, ErrValidation)

	// имя есть, но нет ни владельца, ни события
	_, err = s.Create(ctx, CreateImageParams{Name: "pic"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestImageService_Create_EventOnlyImage(t *testing.T) {
	images := &mockImageRepo{}
	s := NewImageService(images)

	eventID := int64(42)
	images.On("CreateWithSelfie", mock.Anything, mock.MatchedBy(func(img *model.Image) bool {
		return img.Name == "pic" && img.UserID == nil && img.EventID != nil && *img.EventID == 42
	}), false).Return(nil)

	img, err := s.Create(context.Background(), CreateImageParams{Name: "pic", EventID: &eventID})
	assert.NoError(t, err)
	assert.Equal(t, "pic", img.Name)
	images.AssertExpectations(t)
}

func TestImageService_Get_NotFound(t *testing.T) {
	images := &mockImageRepo{}
	s := NewImageService(images)

	images.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageService_Update_PartialFieldsOnly(t *testing.T) {
	images := &mockImageRepo{}
	s := NewImageService(images)

	name := "renamed"
	url := "https://filecoin.example/new"
	images.On("UpdateWithSelfie", mock.Anything, int64(5), map[string]any{
		"name":         "renamed",
		"filecoin_url": "https://filecoin.example/new",
	}, false).Return(&model.Image{ID: 5, Name: "renamed"}, nil)

	img, err := s.Update(context.Background(), 5, UpdateImageParams{Name: &name, FilecoinURL: &url})
	assert.NoError(t, err)
	assert.Equal(t, "renamed", img.Name)
	images.AssertExpectations(t)
}

func TestImageService_ListForUser_Validation(t *testing.T) {
	s := NewImageService(&mockImageRepo{})
	ctx := context.Background()

	zero := 0
	_, err := s.ListForUser(ctx, 1, ListImagesParams{Limit: &zero})
	assert.ErrorIs(t, err, ErrValidation)

	big := 101
	_, err = s.ListForUser(ctx, 1, ListImagesParams{Limit: &big})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.ListForUser(ctx, 1, ListImagesParams{Offset: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestImageService_ListForUser_PassesFilter(t *testing.T) {
	images := &mockImageRepo{}
	s := NewImageService(images)

	limit := 20
	eventID := int64(42)
	images.On("ListByUser", mock.Anything, int64(1), repo.ImageFilter{
		EventID: &eventID, Limit: 20, Offset: 5,
	}).Return([]model.Image{}, nil)

	_, err := s.ListForUser(context.Background(), 1, ListImagesParams{
		EventID: &eventID, Limit: &limit, Offset: 5,
	})
	assert.NoError(t, err)
	images.AssertExpectations(t)
}
