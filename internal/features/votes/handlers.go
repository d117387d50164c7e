// Package votes — handlers.go: HTTP-обработчики нажатий голосования.
// Анонимное голосование отклоняется здесь, до вызова движка.
package votes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handler связывает HTTP-запросы с движком голосования.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик голосования.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upvote — POST /scams/{id}/upvote.
func (h *Handler) Upvote(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	result, err := h.service.PressUpvote(r.Context(), mux.Vars(r)["id"], ident.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// Downvote — POST /scams/{id}/downvote.
func (h *Handler) Downvote(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	result, err := h.service.PressDownvote(r.Context(), mux.Vars(r)["id"], ident.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// CommentUpvote — POST /scams/{id}/comments/{cid}/upvote.
func (h *Handler) CommentUpvote(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	result, err := h.service.PressCommentUpvote(r.Context(), vars["id"], vars["cid"], ident.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// CommentDownvote — POST /scams/{id}/comments/{cid}/downvote.
func (h *Handler) CommentDownvote(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	result, err := h.service.PressCommentDownvote(r.Context(), vars["id"], vars["cid"], ident.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}
