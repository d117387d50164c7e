package activity

import (
	"net/http"

	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handler отдаёт сводку активности пользователя.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик активности.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// My — GET /activity. Сводка строится по вызывающему пользователю,
// анонимному запросу показывать нечего.
func (h *Handler) My(w http.ResponseWriter, r *http.Request) {
	ident := httpx.CallerIdentity(r)
	if ident.IsAnonymous() {
		httpx.WriteUnauthorized(w)
		return
	}

	records, err := h.service.GetUserActivity(r.Context(), ident.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, records)
}
