package handlers

import (
	"Echoo/internal/middleware"
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"Echoo/internal/service"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler — регистрация на события и выборка сматченных изображений.
type EventHandler struct {
	EventService *service.EventService
	Logger       *zap.SugaredLogger
}

func NewEventHandler(eventService *service.EventService, logger *zap.SugaredLogger) *EventHandler {
	return &EventHandler{EventService: eventService, Logger: logger}
}

// EventRegistrationRequest — тело POST /register-event.
type EventRegistrationRequest struct {
	EventID int64 `json:"event_id"`
}

// RegistrationDTO — регистрация в ответах API.
type RegistrationDTO struct {
	ID             int64     `json:"id"`
	FotoowlEventID int64     `json:"fotoowl_event_id"`
	RequestID      int64     `json:"request_id"`
	RequestKey     string    `json:"request_key"`
	RedirectURL    *string   `json:"redirect_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func toRegistrationDTO(m *model.EventRequestMapping) RegistrationDTO {
	return RegistrationDTO{
		ID:             m.ID,
		FotoowlEventID: m.FotoowlEventID,
		RequestID:      m.RequestID,
		RequestKey:     m.RequestKey,
		RedirectURL:    m.RedirectURL,
		CreatedAt:      m.CreatedAt,
	}
}

// RegisterEvent регистрирует пользователя на событие у провайдера
// и сохраняет выданный request.
func (h *EventHandler) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req EventRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("RegisterEvent: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.EventID == 0 {
		writeError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	mapping, err := h.EventService.Register(r.Context(), user, req.EventID)
	if err != nil {
		h.Logger.Warnw("RegisterEvent: failed", "user_id", user.ID, "event_id", req.EventID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Infow("RegisterEvent: registered",
		"user_id", user.ID,
		"event_id", req.EventID,
		"request_id", mapping.RequestID,
	)
	writeJSON(w, http.StatusOK, toRegistrationDTO(mapping))
}

// MyRegistrations — все регистрации пользователя, новые первыми.
func (h *EventHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.EventService.MyRegistrations(r.Context(), user.ID)
	if err != nil {
		h.Logger.Errorw("MyRegistrations: failed", "user_id", user.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	out := make([]RegistrationDTO, 0, len(list))
	for i := range list {
		out = append(out, toRegistrationDTO(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRegistration — регистрация пользователя на конкретное событие.
func (h *EventHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	eventID, err := strconv.ParseInt(chi.URLParam(r, "event_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event_id")
		return
	}

	m, err := h.EventService.GetRegistration(r.Context(), user.ID, eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRegistrationDTO(m))
}

// RegisteredEventDTO — регистрация, дополненная данными события.
type RegisteredEventDTO struct {
	RegistrationID int64      `json:"registration_id"`
	FotoowlEventID int64      `json:"fotoowl_event_id"`
	RequestID      int64      `json:"request_id"`
	RequestKey     string     `json:"request_key"`
	RedirectURL    *string    `json:"redirect_url"`
	RegisteredAt   time.Time  `json:"registration_created_at"`
	EventID        *int64     `json:"event_id"`
	EventName      *string    `json:"event_name"`
	EventDesc      *string    `json:"event_description"`
	EventCoverURL  *string    `json:"event_cover_image_url"`
	EventDate      *time.Time `json:"event_date"`
	EventKey       *string    `json:"fotoowl_event_key"`
}

// MyRegisteredEvents — регистрации пользователя с данными событий.
func (h *EventHandler) MyRegisteredEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rows, err := h.EventService.RegisteredEvents(r.Context(), user.ID)
	if err != nil {
		h.Logger.Errorw("MyRegisteredEvents: failed", "user_id", user.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	out := make([]RegisteredEventDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRegisteredEventDTO(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func toRegisteredEventDTO(row repo.RegisteredEvent) RegisteredEventDTO {
	return RegisteredEventDTO{
		RegistrationID: row.RegistrationID,
		FotoowlEventID: row.FotoowlEventID,
		RequestID:      row.RequestID,
		RequestKey:     row.RequestKey,
		RedirectURL:    row.RedirectURL,
		RegisteredAt:   row.RegisteredAt,
		EventID:        row.EventID,
		EventName:      row.EventName,
		EventDesc:      row.EventDesc,
		EventCoverURL:  row.EventCoverURL,
		EventDate:      row.EventDate,
		EventKey:       row.EventKey,
	}
}

// MatchedImages — страница изображений события, доступная пользователю
// по его регистрации. request_id разрешается из регистрации автоматически.
func (h *EventHandler) MatchedImages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()

	eventID, err := strconv.ParseInt(q.Get("event_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event_id")
		return
	}

	page := 1
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
	}

	pageSize := 10
	if v := q.Get("page_size"); v != "" {
		if pageSize, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid page_size")
			return
		}
	}

	res, err := h.EventService.MatchedImages(r.Context(), user.ID, eventID, page, pageSize)
	if err != nil {
		h.Logger.Warnw("MatchedImages: failed",
			"user_id", user.ID, "event_id", eventID, "error", err)
		writeServiceError(w, err)
		return
	}

	h.Logger.Debugw("MatchedImages: resolved request",
		"user_id", user.ID,
		"event_id", eventID,
		"request_id", res.RequestID,
		"count", len(res.Images),
	)
	writeJSON(w, http.StatusOK, toImageDTOs(res.Images))
}
