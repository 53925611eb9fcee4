package models

// SetFieldRequest представляет изменение одного поля формы.
type SetFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FormStateResponse - текущее состояние формы вместе с ошибками валидации.
type FormStateResponse struct {
	Profile Profile           `json:"profile"`
	Errors  map[string]string `json:"errors"`
}

// SaveResponse возвращается после попытки сохранения.
type SaveResponse struct {
	Saved   bool              `json:"saved"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RemoteProfileResponse - тело ответа удаленного API профиля (/v2/users/me).
type RemoteProfileResponse struct {
	Profile *RemoteProfile `json:"profile"`
}

// RemoteProfile - поля профиля, которые отдает удаленный API.
type RemoteProfile struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURI   string  `json:"avatar_uri"`
	Location    *string `json:"location"`
}

// GeoLocationResponse - тело ответа API геолокации по IP.
type GeoLocationResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}
