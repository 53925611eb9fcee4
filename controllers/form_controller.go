package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"profile_form_go/models"
	"profile_form_go/validation"

	"github.com/rs/zerolog/log"
)

// Form - то, что HTTP-слою нужно от контроллера формы.
type Form interface {
	Snapshot() (models.Profile, validation.Errors)
	SetField(name, value string) error
	HandleSave(ctx context.Context) (bool, error)
	Refresh() error
}

// FormHandler отдает форму профиля браузерному клиенту.
type FormHandler struct {
	form        Form
	savedNotice string
}

func NewFormHandler(form Form, savedNotice string) *FormHandler {
	return &FormHandler{form: form, savedNotice: savedNotice}
}

// GetForm возвращает текущий профиль и ошибки последней проверки.
// Пример URL: GET /api/profile
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	profile, errs := h.form.Snapshot()
	respondJSON(w, http.StatusOK, models.FormStateResponse{
		Profile: profile,
		Errors:  errs.Strings(),
	})
}

// SetField меняет одно поле формы и возвращает новое состояние.
// Пример URL: PATCH /api/profile/fields
func (h *FormHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req models.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := h.form.SetField(req.Field, req.Value); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.GetForm(w, r)
}

// Save проверяет форму и сохраняет ее.
// Пример URL: POST /api/profile/save
func (h *FormHandler) Save(w http.ResponseWriter, r *http.Request) {
	saved, err := h.form.HandleSave(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error saving profile")
		respondError(w, http.StatusInternalServerError, "Failed to save profile.")
		return
	}

	if !saved {
		_, errs := h.form.Snapshot()
		respondJSON(w, http.StatusUnprocessableEntity, models.SaveResponse{
			Saved:  false,
			Errors: errs.Strings(),
		})
		return
	}

	respondJSON(w, http.StatusOK, models.SaveResponse{Saved: true, Message: h.savedNotice})
}

// Refresh заново запрашивает данные из удаленных API.
// Пример URL: POST /api/profile/refresh
func (h *FormHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.form.Refresh(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}
