package service

import (
	"Echoo/internal/model"
	"Echoo/internal/repo"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService инкапсулирует регистрацию, аутентификацию и профиль.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
// Повторный username — ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	// Предварительная проверка: даёт детерминированную ошибку
	// до обращения к bcrypt. Гонку закрывает уникальный индекс ниже.
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q", ErrConflict, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q", ErrConflict, username)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate проверяет пару логин/пароль против сохранённого хеша.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile возвращает пользователя по ID.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate — частичное обновление профиля: меняются только
// непустые (заданные) поля.
type ProfileUpdate struct {
	Email        *string
	InstagramURL *string
	TwitterURL   *string
	LinkedinURL  *string
	Description  *string
	Interests    *string
}

// UpdateProfile применяет частичное обновление и возвращает свежий профиль.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*model.User, error) {
	updates := map[string]any{}
	if upd.Email != nil {
		updates["email"] = *upd.Email
	}
	if upd.InstagramURL != nil {
		updates["instagram_url"] = *upd.InstagramURL
	}
	if upd.TwitterURL != nil {
		updates["twitter_url"] = *upd.TwitterURL
	}
	if upd.LinkedinURL != nil {
		updates["linkedin_url"] = *upd.LinkedinURL
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Interests != nil {
		updates["interests"] = *upd.Interests
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}

	user, err := s.repo.UpdateUserFields(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}
