package handlers

import (
	"Echoo/internal/model"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// EventDTO — событие в публичных ответах API.
type EventDTO struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	CoverImageURL    *string   `json:"cover_image_url"`
	CoverImageHeight *int      `json:"cover_image_height"`
	CoverImageWidth  *int      `json:"cover_image_width"`
	Location         *string   `json:"location"`
	Category         *string   `json:"category"`
	EventDate        *string   `json:"event_date"`
	FotoowlEventID   *int64    `json:"fotoowl_event_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toEventDTO(e *model.Event) EventDTO {
	dto := EventDTO{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		CoverImageURL:    e.CoverImageURL,
		CoverImageHeight: e.CoverImageHeight,
		CoverImageWidth:  e.CoverImageWidth,
		Location:         e.Location,
		Category:         e.Category,
		FotoowlEventID:   e.FotoowlEventID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.EventDate != nil {
		d := e.EventDate.Format("2006-01-02")
		dto.EventDate = &d
	}
	return dto
}

// PublicList — публичный листинг событий, даты по убыванию.
func (h *EventHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit *int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = &n
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	events, err := h.EventService.PublicList(r.Context(), limit, offset)
	if err != nil {
		h.Logger.Warnw("PublicList: failed", "error", err)
		writeServiceError(w, err)
		return
	}

	out := make([]EventDTO, 0, len(events))
	for i := range events {
		out = append(out, toEventDTO(&events[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// PublicGet — публичное событие по ID.
func (h *EventHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.EventService.PublicGet(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(event))
}
