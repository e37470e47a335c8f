package main

import (
	"Echoo/internal/config"
	"Echoo/internal/fotoowl"
	"Echoo/internal/handlers"
	"Echoo/internal/middleware"
	"Echoo/internal/repo"
	"Echoo/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	imageRepo := repo.NewImageRepository(gormDB)
	eventRepo := repo.NewEventRepository(gormDB)
	mappingRepo := repo.NewMappingRepository(gormDB)

	provider := fotoowl.NewClient(cfg.FotoowlBaseURL, cfg.FotoowlTimeout)

	userService := service.NewUserService(userRepo)
	imageService := service.NewImageService(imageRepo)
	eventService := service.NewEventService(eventRepo, mappingRepo, imageRepo, provider)

	h := handlers.NewHandler(userService, imageService, eventService, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddress,
		"environment", cfg.Environment,
		"fotoowl", cfg.FotoowlBaseURL,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
