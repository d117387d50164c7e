package locations

import (
	"net/http"

	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handler отдаёт справочник локаций для автодополнения на клиенте.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик локаций.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List — GET /locations. Отдаёт все узлы иерархии без фильтрации,
// клиент сам строит из них дерево подсказок.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.service.ListNodes(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	type nodeResponse struct {
		ID string `json:"id"`
		*Node
	}
	out := make([]nodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeResponse{ID: n.ID, Node: n})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
