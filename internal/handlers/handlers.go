package handlers

import (
	"Echoo/internal/config"
	"Echoo/internal/middleware"
	"Echoo/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	imageService *service.ImageService,
	eventService *service.EventService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	userHandler := NewUserHandler(userService, logger)
	imageHandler := NewImageHandler(imageService, logger)
	eventHandler := NewEventHandler(eventService, logger)

	r.Get("/", root)
	r.Get("/health", health(cfg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// Маршруты конечного пользователя (Basic против БД)
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithUserAuth(userService))

			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)

			r.Get("/images", imageHandler.ListForUser)
			r.Get("/images/{id}", imageHandler.GetForUser)
			r.Get("/getImageList", imageHandler.GetImageList)

			r.Post("/register-event", eventHandler.RegisterEvent)
			r.Get("/my-registrations", eventHandler.MyRegistrations)
			r.Get("/registration/{event_id}", eventHandler.GetRegistration)
			r.Get("/my-registered-events", eventHandler.MyRegisteredEvents)
			r.Get("/get-event-matched-image-list", eventHandler.MatchedImages)
		})

		// Публичные маршруты без аутентификации
		r.Route("/public", func(r chi.Router) {
			r.Get("/events", eventHandler.PublicList)
			r.Get("/events/{id}", eventHandler.PublicGet)
		})

		// Маршруты внутреннего сервиса (Basic против конфигурации)
		r.Route("/internal", func(r chi.Router) {
			r.Use(middleware.WithInternalAuth(cfg.InternalUsername, cfg.InternalPassword))

			r.Post("/images", imageHandler.Create)
			r.Get("/images/{id}", imageHandler.Get)
			r.Put("/images/{id}", imageHandler.Update)
		})
	})

	return &Handler{Router: r}
}

func root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Echoo API is running",
		"version": apiVersion,
	})
}

func health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "healthy",
			"environment": cfg.Environment,
			"service":     "echoo-api",
		})
	}
}

// writeJSON сериализует ответ; статус выставляется до записи тела.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отдаёт структурированную ошибку {"error": "..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError переводит ошибку таксономии сервиса в HTTP-статус.
// Неизвестные ошибки наружу не показываются.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotRegistered):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrProviderResponse):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
