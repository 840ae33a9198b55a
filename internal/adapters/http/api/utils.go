package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	service "github.com/okian/facultyhub/internal/app"
	"github.com/okian/facultyhub/internal/domain/model"
	"github.com/okian/facultyhub/internal/domain/ranking"
	"github.com/okian/facultyhub/pkg/logger"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an error to its HTTP status and response code.
func classify(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ranking.ErrUnknownSortKey),
		errors.Is(err, ranking.ErrUnknownDirection),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrInvalidYearRange),
		errors.As(err, &verrs):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// responder writes handler failures and logs server errors.
type responder struct {
	logger logger.Logger
}

// fail writes err as a JSON error. Server errors are logged and answered
// with a generic message.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		requestLogger(r, rs.logger).Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, status, code, ErrInternal)
		return
	}
	writeError(w, status, code, Wrap(op, err))
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, WrapKind(name, ErrBadRequest, errors.New("must be an integer"))
	}
	return n, nil
}

// queryList collects a repeatable parameter, dropping blanks.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
