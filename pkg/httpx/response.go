package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as JSON with the given status code and nosniff header.
// Encoding errors are dropped; the status line has already been sent.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
} // @name ErrorResponse

// Violation names one invalid request field.
type Violation struct {
	Field   string `json:"field"   example:"uf"`
	Message string `json:"message" example:"Maximum length is 2"`
} // @name Violation

// ValidationErrorResponse lists every violation found in a request.
type ValidationErrorResponse struct {
	Error      string      `json:"error"      example:"validation failed"`
	Violations []Violation `json:"violations"`
} // @name ValidationErrorResponse

// JSONViolations writes a 400 carrying all violations.
func JSONViolations(w http.ResponseWriter, violations []Violation) {
	JSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:      "validation failed",
		Violations: violations,
	})
}

// SafeError returns the message for client responses. 5xx messages are
// replaced with the generic status text so internals do not leak.
func SafeError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
