package service

import "errors"

// Таксономия ошибок бизнес-логики. Хендлеры сопоставляют их
// с HTTP-статусами через errors.Is; сырые ошибки хранилища
// наружу не выходят.
var (
	// ErrNotFound — запрошенной записи нет.
	ErrNotFound = errors.New("not found")

	// ErrConflict — запись уже существует (дубликат уникального ключа).
	ErrConflict = errors.New("already exists")

	// ErrNotRegistered — пользователь не зарегистрирован на событие.
	ErrNotRegistered = errors.New("not registered for event")

	// ErrValidation — некорректные входные параметры.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrProviderUnavailable — внешний провайдер событий недоступен.
	ErrProviderUnavailable = errors.New("event provider unavailable")

	// ErrProviderResponse — провайдер ответил, но ответ не по контракту.
	ErrProviderResponse = errors.New("invalid event provider response")
)
