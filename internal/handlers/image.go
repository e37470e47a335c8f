package handlers

import (
	"Echoo/internal/middleware"
	"Echoo/internal/model"
	"Echoo/internal/service"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ImageHandler — внутренний CRUD и пользовательские листинги изображений.
type ImageHandler struct {
	ImageService *service.ImageService
	Logger       *zap.SugaredLogger
}

func NewImageHandler(imageService *service.ImageService, logger *zap.SugaredLogger) *ImageHandler {
	return &ImageHandler{ImageService: imageService, Logger: logger}
}

// ImageDTO — изображение в ответах API. ImageURL — вычисляемое поле:
// filecoin_url с приоритетом над fotoowl_url.
type ImageDTO struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	UserID         *int64    `json:"user_id"`
	FotoowlImageID *int64    `json:"fotoowl_image_id"`
	FotoowlURL     *string   `json:"fotoowl_url"`
	FilecoinURL    *string   `json:"filecoin_url"`
	FilecoinCID    *string   `json:"filecoin_cid"`
	Size           *int64    `json:"size"`
	Height         *int      `json:"height"`
	Width          *int      `json:"width"`
	Description    *string   `json:"description"`
	ImageEncoding  *string   `json:"image_encoding"`
	EventID        *int64    `json:"event_id"`
	ImageURL       *string   `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toImageDTO(img *model.Image) ImageDTO {
	return ImageDTO{
		ID:             img.ID,
		Name:           img.Name,
		UserID:         img.UserID,
		FotoowlImageID: img.FotoowlImageID,
		FotoowlURL:     img.FotoowlURL,
		FilecoinURL:    img.FilecoinURL,
		FilecoinCID:    img.FilecoinCID,
		Size:           img.Size,
		Height:         img.Height,
		Width:          img.Width,
		Description:    img.Description,
		ImageEncoding:  img.ImageEncoding,
		EventID:        img.EventID,
		ImageURL:       img.DisplayURL(),
		CreatedAt:      img.CreatedAt,
		UpdatedAt:      img.UpdatedAt,
	}
}

func toImageDTOs(images []model.Image) []ImageDTO {
	out := make([]ImageDTO, 0, len(images))
	for i := range images {
		out = append(out, toImageDTO(&images[i]))
	}
	return out
}

// ImageCreateRequest — тело POST /internal/images.
type ImageCreateRequest struct {
	Name           string  `json:"name"`
	UserID         *int64  `json:"user_id,omitempty"`
	IsSelfie       bool    `json:"is_selfie,omitempty"`
	FotoowlImageID *int64  `json:"fotoowl_image_id,omitempty"`
	FotoowlURL     *string `json:"fotoowl_url,omitempty"`
	FilecoinURL    *string `json:"filecoin_url,omitempty"`
	CID            *string `json:"cid,omitempty"`
	Size           *int64  `json:"size,omitempty"`
	Height         *int    `json:"height,omitempty"`
	Width          *int    `json:"width,omitempty"`
	Description    *string `json:"description,omitempty"`
	ImageEncoding  *string `json:"image_encoding,omitempty"`
	EventID        *int64  `json:"event_id,omitempty"`
}

// Create — внутреннее создание изображения.
func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ImageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreateImage: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	img, err := h.ImageService.Create(r.Context(), service.CreateImageParams{
		Name:           req.Name,
		UserID:         req.UserID,
		IsSelfie:       req.IsSelfie,
		FotoowlImageID: req.FotoowlImageID,
		FotoowlURL:     req.FotoowlURL,
		FilecoinURL:    req.FilecoinURL,
		FilecoinCID:    req.CID,
		Size:           req.Size,
		Height:         req.Height,
		Width:          req.Width,
		Description:    req.Description,
		ImageEncoding:  req.ImageEncoding,
		EventID:        req.EventID,
	})
	if err != nil {
		h.Logger.Warnw("CreateImage: failed", "name", req.Name, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toImageDTO(img))
}

// Get — внутреннее чтение изображения по ID.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := h.ImageService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toImageDTO(img))
}

// ImageUpdateRequest — тело PUT /internal/images/{id}.
type ImageUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	UserID         *int64  `json:"user_id,omitempty"`
	IsSelfie       bool    `json:"is_selfie,omitempty"`
	FotoowlImageID *int64  `json:"fotoowl_image_id,omitempty"`
	FotoowlURL     *string `json:"fotoowl_url,omitempty"`
	FilecoinURL    *string `json:"filecoin_url,omitempty"`
	FilecoinCID    *string `json:"filecoin_cid,omitempty"`
	Size           *int64  `json:"size,omitempty"`
	Height         *int    `json:"height,omitempty"`
	Width          *int    `json:"width,omitempty"`
	Description    *string `json:"description,omitempty"`
	ImageEncoding  *string `json:"image_encoding,omitempty"`
	EventID        *int64  `json:"event_id,omitempty"`
}

// Update — внутреннее частичное обновление изображения.
func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req ImageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("UpdateImage: invalid request body", "id", id, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	img, err := h.ImageService.Update(r.Context(), id, service.UpdateImageParams{
		Name:           req.Name,
		UserID:         req.UserID,
		IsSelfie:       req.IsSelfie,
		FotoowlImageID: req.FotoowlImageID,
		FotoowlURL:     req.FotoowlURL,
		FilecoinURL:    req.FilecoinURL,
		FilecoinCID:    req.FilecoinCID,
		Size:           req.Size,
		Height:         req.Height,
		Width:          req.Width,
		Description:    req.Description,
		ImageEncoding:  req.ImageEncoding,
		EventID:        req.EventID,
	})
	if err != nil {
		h.Logger.Warnw("UpdateImage: failed", "id", id, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toImageDTO(img))
}

// ListForUser — все изображения аутентифицированного пользователя.
func (h *ImageHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	images, err := h.ImageService.ListForUser(r.Context(), user.ID, service.ListImagesParams{})
	if err != nil {
		h.Logger.Errorw("ListImages: failed", "user_id", user.ID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toImageDTOs(images))
}

// GetForUser — одно изображение пользователя по ID.
func (h *ImageHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	img, err := h.ImageService.GetForUser(r.Context(), id, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toImageDTO(img))
}

// GetImageList — листинг с опциональными limit/offset/event_id.
func (h *ImageHandler) GetImageList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	params := service.ListImagesParams{}
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		params.Limit = &n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		params.Offset = n
	}
	if v := q.Get("event_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid event_id")
			return
		}
		params.EventID = &n
	}

	images, err := h.ImageService.ListForUser(r.Context(), user.ID, params)
	if err != nil {
		h.Logger.Warnw("GetImageList: failed", "user_id", user.ID, "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toImageDTOs(images))
}
