package controllers

import (
	"fmt"
	"net/http"

	"profile_form_go/auth"
	"profile_form_go/middleware"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// NewRouter собирает маршруты API формы.
func NewRouter(h *FormHandler, tokens *auth.Service) http.Handler {
	router := mux.NewRouter()

	// Маршрут для проверки состояния сервера (открытый, без JWT)
	router.HandleFunc("/api/Service/status", HealthCheck).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware(tokens))

	profileRouter := apiRouter.PathPrefix("/profile").Subrouter()
	profileRouter.HandleFunc("", h.GetForm).Methods(http.MethodGet)
	profileRouter.HandleFunc("/fields", h.SetField).Methods(http.MethodPatch)
	profileRouter.HandleFunc("/save", h.Save).Methods(http.MethodPost)
	profileRouter.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "profile_form_go is running.")
	}).Methods(http.MethodGet)

	// Форма работает в браузере на другом origin.
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(router)
}
