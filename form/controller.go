package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"profile_form_go/models"
	"profile_form_go/remote"
	"profile_form_go/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SavedMessage - подтверждение, которое получает пользователь после сохранения.
const SavedMessage = "Profile saved successfully"

var (
	ErrUnknownField   = errors.New("unknown profile field")
	ErrAlreadyMounted = errors.New("form is already mounted")
	ErrNotMounted     = errors.New("form is not mounted")
)

// ProfileStorage - постоянное хранилище профиля.
type ProfileStorage interface {
	Load(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, profile models.Profile) error
}

// Notifier показывает пользователю подтверждение успешного сохранения.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc позволяет использовать функцию как Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Options управляет слиянием результатов удаленных запросов.
type Options struct {
	// KeepFetchedLocation не дает пустому location из API профиля
	// затереть значение, полученное геолокацией.
	KeepFetchedLocation bool
}

// Controller владеет состоянием формы профиля и ошибками валидации.
// Время жизни задается явно: Mount запускает загрузку, Unmount ее прекращает.
type Controller struct {
	id       string
	store    ProfileStorage
	profiles remote.ProfileFetcher
	location remote.LocationFetcher
	notifier Notifier
	opts     Options
	logger   zerolog.Logger

	mu      sync.Mutex
	profile models.Profile
	errs    validation.Errors
	alive   bool
	epoch   uint64
	lifeCtx context.Context
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// NewController собирает форму из явно переданных зависимостей.
// profiles и location могут быть nil - соответствующий запрос просто не выполняется.
func NewController(store ProfileStorage, profiles remote.ProfileFetcher, location remote.LocationFetcher, notifier Notifier, opts Options) *Controller {
	id := uuid.New().String()
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Controller{
		id:       id,
		store:    store,
		profiles: profiles,
		location: location,
		notifier: notifier,
		opts:     opts,
		logger:   log.With().Str("form_id", id).Logger(),
		errs:     validation.Errors{},
	}
}

// ID возвращает идентификатор экземпляра формы для логов.
func (c *Controller) ID() string {
	return c.id
}

// Mount сбрасывает состояние, синхронно загружает сохраненный профиль
// и запускает оба удаленных запроса, не дожидаясь их.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.alive {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mu.Unlock()

	profile := models.Profile{}
	saved, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("could not load saved profile, starting empty")
	} else if saved != nil {
		profile = *saved
		c.logger.Info().Msg("loaded saved profile")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alive {
		return ErrAlreadyMounted
	}
	c.profile = profile
	c.errs = validation.Errors{}
	c.alive = true
	c.epoch++
	c.lifeCtx, c.cancel = context.WithCancel(context.WithoutCancel(ctx))
	c.startFetchesLocked()
	return nil
}

// Refresh повторно запускает оба удаленных запроса для смонтированной формы.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return ErrNotMounted
	}
	c.startFetchesLocked()
	return nil
}

func (c *Controller) startFetchesLocked() {
	ctx, epoch := c.lifeCtx, c.epoch
	location, profiles, keepLocation := c.location, c.profiles, c.opts.KeepFetchedLocation

	if location != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			patch, err := location.FetchLocation(ctx)
			if err != nil {
				c.logger.Warn().Err(err).Msg("Error fetching location")
				return
			}
			c.apply(epoch, remote.SourceLocation, patch)
		}()
	}

	if profiles != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			patch, err := profiles.FetchUserProfile(ctx)
			if err != nil {
				c.logger.Warn().Err(err).Msg("Error fetching user profile")
				return
			}
			if keepLocation && patch.Location != nil && *patch.Location == "" {
				patch.Drop(models.FieldLocation)
			}
			c.apply(epoch, remote.SourceProfile, patch)
		}()
	}
}

// apply накладывает результат запроса на актуальное состояние.
// Результаты, пришедшие после Unmount или от прошлого монтирования, отбрасываются.
func (c *Controller) apply(epoch uint64, source remote.Source, patch models.ProfilePatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive || epoch != c.epoch {
		c.logger.Debug().Str("source", string(source)).Msg("form unmounted, dropping fetch result")
		return
	}
	c.profile = patch.Apply(c.profile)
	c.logger.Debug().Str("source", string(source)).Interface("fields", patch.Owned()).Msg("merged fetch result")
}

// SetField меняет ровно одно поле формы.
func (c *Controller) SetField(name, value string) error {
	field, err := models.ParseField(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = c.profile.With(field, value)
	return nil
}

// HandleSave проверяет форму и при успехе сохраняет профиль целиком.
// Ошибки валидации всегда заменяют предыдущие. false без ошибки означает,
// что форма не прошла проверку.
func (c *Controller) HandleSave(ctx context.Context) (bool, error) {
	c.mu.Lock()
	snapshot := c.profile
	errs, ok := validation.Validate(snapshot)
	c.errs = errs
	c.mu.Unlock()

	if !ok {
		c.logger.Info().Interface("errors", errs).Msg("profile failed validation")
		return false, nil
	}

	if err := c.store.Save(ctx, snapshot); err != nil {
		return false, fmt.Errorf("failed to persist profile: %w", err)
	}
	c.logger.Info().Msg("profile saved")
	c.notifier.Notify(SavedMessage)
	return true, nil
}

// Snapshot возвращает копии текущего профиля и ошибок.
func (c *Controller) Snapshot() (models.Profile, validation.Errors) {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := make(validation.Errors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	return c.profile, errs
}

// Unmount прерывает незавершенные запросы; их результаты больше не применяются.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	c.alive = false
	c.cancel()
}

// Wait блокируется, пока не завершатся все запущенные запросы.
func (c *Controller) Wait() {
	c.wg.Wait()
}
