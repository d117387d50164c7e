// Package users — handlers.go: HTTP-обработчики профилей.
package users

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handler связывает HTTP-запросы с сервисом профилей.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик профилей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createProfileRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Create — POST /users. Хук регистрации: создаёт документ профиля
// под id вызывающего.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "некорректное тело запроса")
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), ident.ID, req.Username, req.Email, req.FirstName, req.LastName)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, profile)
}

// Get — GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}
