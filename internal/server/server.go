// Package server собирает HTTP-маршрутизатор и промежуточные обработчики.
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tsonthalia/travel-guardians/internal/features/activity"
	"github.com/tsonthalia/travel-guardians/internal/features/locations"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
	"github.com/tsonthalia/travel-guardians/internal/features/votes"
	"github.com/tsonthalia/travel-guardians/internal/server/httpx"
)

// Handlers — все обработчики приложения, собранные в одном месте.
type Handlers struct {
	Users     *users.Handler
	Scams     *scams.Handler
	Votes     *votes.Handler
	Locations *locations.Handler
	Activity  *activity.Handler
}

// NewRouter строит маршрутизатор со всеми маршрутами приложения.
// Ответ за пределами известных маршрутов — JSON 404, а не стандартная
// текстовая страница.
func NewRouter(h Handlers, rl *RateLimiter) *mux.Router {
	r := mux.NewRouter()

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	if rl != nil {
		r.Use(rateLimitMiddleware(rl))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Профили.
	r.HandleFunc("/users", h.Users.Create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.Users.Get).Methods(http.MethodGet)

	// Отчёты и лента.
	r.HandleFunc("/feed", h.Scams.Feed).Methods(http.MethodGet)
	r.HandleFunc("/scams", h.Scams.Create).Methods(http.MethodPost)
	r.HandleFunc("/scams/{id}", h.Scams.Get).Methods(http.MethodGet)

	// Комментарии.
	r.HandleFunc("/scams/{id}/comments", h.Scams.AddComment).Methods(http.MethodPost)
	r.HandleFunc("/scams/{id}/comments/{cid}", h.Scams.DeleteComment).Methods(http.MethodDelete)

	// Голосование.
	r.HandleFunc("/scams/{id}/upvote", h.Votes.Upvote).Methods(http.MethodPost)
	r.HandleFunc("/scams/{id}/downvote", h.Votes.Downvote).Methods(http.MethodPost)
	r.HandleFunc("/scams/{id}/comments/{cid}/upvote", h.Votes.CommentUpvote).Methods(http.MethodPost)
	r.HandleFunc("/scams/{id}/comments/{cid}/downvote", h.Votes.CommentDownvote).Methods(http.MethodPost)

	// Локации.
	r.HandleFunc("/locations", h.Locations.List).Methods(http.MethodGet)
	r.HandleFunc("/locations/popular", h.Scams.Popular).Methods(http.MethodGet)

	// Активность вызывающего.
	r.HandleFunc("/activity", h.Activity.My).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, map[string]any{
			"status": http.StatusNotFound, "error": "route not found", "error_code": httpx.CodeNotFound,
		})
	})

	return r
}
