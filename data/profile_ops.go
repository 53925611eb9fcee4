package data

import (
	"context"
	"encoding/json"
	"fmt"

	"profile_form_go/models"

	"github.com/rs/zerolog/log"
)

// ProfileKey - фиксированный ключ, под которым хранится профиль.
const ProfileKey = "profile"

// ProfileStore читает и пишет профиль формы в хранилище ключ-значение.
type ProfileStore struct {
	kv KeyValueStore
}

func NewProfileStore(kv KeyValueStore) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Load возвращает сохраненный профиль.
// Отсутствующая или поврежденная запись - это nil без ошибки.
// Ошибка возвращается только при сбое самого хранилища.
func (s *ProfileStore) Load(ctx context.Context) (*models.Profile, error) {
	raw, ok, err := s.kv.GetItem(ctx, ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved profile: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var profile *models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn().Err(err).Str("key", ProfileKey).Msg("saved profile is malformed, ignoring it")
		return nil, nil
	}
	// JSON null дает nil - тоже считаем, что профиля нет.
	return profile, nil
}

// Save сериализует профиль целиком и заменяет предыдущее значение.
func (s *ProfileStore) Save(ctx context.Context, profile models.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.SetItem(ctx, ProfileKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
