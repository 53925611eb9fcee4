package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Заголовки уже отправлены, остается только лог.
			log.Error().Err(err).Msg("Error encoding JSON response")
		}
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Warn().Int("status", statusCode).Msg(message)
	respondJSON(w, statusCode, map[string]string{"error": message})
}
