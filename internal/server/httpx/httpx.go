// Package httpx — общие помощники HTTP-слоя: личность вызывающего
// из заголовков и JSON-ответы с строковыми кодами ошибок.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tsonthalia/travel-guardians/internal/common"
)

// Строковые коды ошибок для клиента.
var (
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidData  = "INVALID_DATA"
	CodeParsing      = "PARSING_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// Заголовки, в которых внешний слой аутентификации передаёт личность.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
)

// errorBody — JSON-конверт ошибки.
type errorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// CallerIdentity достаёт личность вызывающего из заголовков.
// Пустой X-User-Id означает анонимный запрос.
func CallerIdentity(r *http.Request) common.Identity {
	ident := common.Identity{
		ID:          r.Header.Get(HeaderUserID),
		DisplayName: r.Header.Get(HeaderUserName),
	}
	if ident.ID != "" && ident.DisplayName == "" {
		ident.DisplayName = "Anonymous"
	}
	return ident
}

// WriteJSON сериализует ответ. Ошибку сериализации уже не вернуть клиенту
// нормально — деградируем в text/plain.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Ошибка сериализации ответа")
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
	}
}

// WriteError переводит доменную ошибку в статус и код.
// Транспортные ошибки логируются и отдаются как INTERNAL_ERROR
// без деталей.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := CodeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrScamNotFound),
		errors.Is(err, common.ErrCommentNotFound),
		errors.Is(err, common.ErrLocationNotFound):
		status = http.StatusNotFound
		code = CodeNotFound
		msg = err.Error()

	case errors.Is(err, common.ErrEmptyTitle),
		errors.Is(err, common.ErrEmptyDescription),
		errors.Is(err, common.ErrNoLocations),
		errors.Is(err, common.ErrEmptyCity),
		errors.Is(err, common.ErrEmptyCountry),
		errors.Is(err, common.ErrEmptyContinent),
		errors.Is(err, common.ErrEmptyComment):
		status = http.StatusBadRequest
		code = CodeInvalidData
		msg = err.Error()

	case errors.Is(err, common.ErrNotAuthor):
		status = http.StatusForbidden
		code = CodeForbidden
		msg = err.Error()

	default:
		log.WithError(err).Error("Внутренняя ошибка запроса")
	}

	WriteJSON(w, status, errorBody{Status: status, Error: msg, ErrorCode: code})
}

// WriteBadRequest — ошибка разбора тела запроса.
func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, errorBody{
		Status: http.StatusBadRequest, Error: msg, ErrorCode: CodeParsing,
	})
}

// WriteUnauthorized — анонимный запрос на операцию, требующую личность.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, errorBody{
		Status: http.StatusUnauthorized, Error: "authentication required", ErrorCode: CodeUnauthorized,
	})
}

// WriteTooManyRequests — превышен лимит запросов.
func WriteTooManyRequests(w http.ResponseWriter) {
	WriteJSON(w, http.StatusTooManyRequests, errorBody{
		Status: http.StatusTooManyRequests, Error: "too many requests", ErrorCode: CodeRateLimited,
	})
}

// WriteInternal — ответ 500 без деталей.
func WriteInternal(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, errorBody{
		Status: http.StatusInternalServerError, Error: "internal error", ErrorCode: CodeInternal,
	})
}
