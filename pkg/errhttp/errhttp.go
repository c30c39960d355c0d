// Package errhttp maps domain errors to HTTP responses.
// Add a case to WriteError for each new domain error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ecoleta/ecoleta/pkg/httpx"
	"github.com/ecoleta/ecoleta/pkg/telemetry"
	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
)

// WriteError maps err to a status code and writes the JSON error body.
// Wrapped errors are matched with errors.Is/As. Unrecognized errors become a
// 500 whose message never reaches the client; they are reported to Sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *pointdomain.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONViolations(w, toViolations(ve.Violations))
		return
	}

	var ue *pointdomain.UnknownItemsError
	if errors.As(err, &ue) {
		httpx.JSONViolations(w, toViolations([]pointdomain.Violation{ue.Violation()}))
		return
	}

	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.JSONError(w, status, message(err, status))
}

// NotFound writes the 404 body used for every missing resource.
func NotFound(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusNotFound, "not found")
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, pointdomain.ErrPointNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, pointdomain.ErrInvalidSubmission),
		errors.Is(err, pointdomain.ErrUnknownItem):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

func message(err error, status int) string {
	if status == http.StatusNotFound {
		return "not found"
	}
	return httpx.SafeError(err, status)
}

func toViolations(vs []pointdomain.Violation) []httpx.Violation {
	out := make([]httpx.Violation, len(vs))
	for i, v := range vs {
		out[i] = httpx.Violation{Field: v.Field, Message: v.Message}
	}
	return out
}
