package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"profile_form_go/auth"
	"profile_form_go/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProfileFetcher получает поля профиля авторизованного пользователя.
type ProfileFetcher interface {
	FetchUserProfile(ctx context.Context) (models.ProfilePatch, error)
}

// ProfileClient ходит в удаленный API профиля с bearer-токеном.
type ProfileClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func NewProfileClient(httpClient *http.Client, endpoint, token string) *ProfileClient {
	return &ProfileClient{httpClient: httpClient, endpoint: endpoint, token: token}
}

// FetchUserProfile возвращает обновление для полей email, username,
// displayName, avatarURI и location. Остальные поля формы не затрагиваются.
func (c *ProfileClient) FetchUserProfile(ctx context.Context) (models.ProfilePatch, error) {
	if exp, ok := auth.ExpiresAt(c.token); ok && exp.Before(time.Now()) {
		log.Warn().Time("expired_at", exp).Msg("profile API token looks expired, request will likely fail")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceProfile, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceProfile, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return models.ProfilePatch{}, &FetchError{
			Source:     SourceProfile,
			StatusCode: resp.StatusCode,
			Err:        errors.New("failed to fetch user profile"),
		}
	}

	var body models.RemoteProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceProfile, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if body.Profile == nil {
		return models.ProfilePatch{}, &FetchError{Source: SourceProfile, StatusCode: resp.StatusCode, Err: errors.New("response has no profile object")}
	}

	return profilePatch(*body.Profile), nil
}

func profilePatch(rp models.RemoteProfile) models.ProfilePatch {
	var patch models.ProfilePatch
	patch.Set(models.FieldEmail, rp.Email)
	patch.Set(models.FieldUsername, rp.Username)
	patch.Set(models.FieldDisplayName, rp.DisplayName)
	patch.Set(models.FieldAvatarURI, rp.AvatarURI)

	location := ""
	if rp.Location != nil {
		location = *rp.Location
	}
	patch.Set(models.FieldLocation, location)
	return patch
}
