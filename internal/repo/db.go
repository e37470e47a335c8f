package repo

import (
	"Echoo/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к Postgres и прогоняет автомиграции моделей.
// TranslateError включён, чтобы нарушения уникальности приходили
// как gorm.ErrDuplicatedKey, а не как сырой error драйвера.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Image{},
		&model.Event{},
		&model.EventRequestMapping{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
