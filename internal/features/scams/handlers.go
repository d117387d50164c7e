// Package scams — handlers.go: HTTP-обработчики постов и комментариев.
package scams

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handler связывает HTTP-запросы с сервисом постов.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик постов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// scamResponse добавляет к телу документа id (внутри документа он
// не сериализуется) и готовые строки для карточки поста.
type scamResponse struct {
	ID string `json:"id"`
	*Scam
	LocationsShort string `json:"locationsShort"`
	TimeAgo        string `json:"timeAgo"`
}

func newScamResponse(sc *Scam) scamResponse {
	labels := make([]common.LocationLabel, 0, len(sc.Locations))
	for _, l := range sc.Locations {
		labels = append(labels, common.LocationLabel{City: l.City, Country: l.Country})
	}
	return scamResponse{
		ID:             sc.ID,
		Scam:           sc,
		LocationsShort: common.ShortLocationsString(labels),
		TimeAgo:        common.TimeAgo(sc.CreatedAt, time.Now().UTC()),
	}
}

// Feed — GET /feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.Feed(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	out := make([]scamResponse, 0, len(feed))
	for _, sc := range feed {
		out = append(out, newScamResponse(sc))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get — GET /scams/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	scam, err := h.service.GetScam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newScamResponse(scam))
}

// Create — POST /scams. Только для аутентифицированных.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteBadRequest(w, "некорректное тело запроса")
		return
	}

	scam, err := h.service.CreateScam(r.Context(), ident, in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, newScamResponse(scam))
}

type addCommentRequest struct {
	Text string `json:"comment"`
}

// AddComment — POST /scams/{id}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "некорректное тело запроса")
		return
	}

	comment, err := h.service.AddComment(r.Context(), ident, mux.Vars(r)["id"], req.Text)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, comment)
}

// DeleteComment — DELETE /scams/{id}/comments/{cid}. Только автор.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	if err := h.service.DeleteComment(r.Context(), ident, vars["id"], vars["cid"]); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Popular — GET /locations/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	popular, err := h.service.PopularLocations(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, popular)
}
