// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dalemusser/youthportal/internal/app/system/apperr"
)

// maxBody caps JSON request bodies; the largest form is the survey.
const maxBody = 64 << 10

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads the request body into v. Unknown fields are ignored.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	return dec.Decode(v)
}

// Unauthorized answers 401 for callers without a session.
// GET /unauthorized
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusUnauthorized, Response{Error: apperr.MsgSignIn})
}

// Forbidden answers 403.
// GET /forbidden
func Forbidden(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusForbidden, Response{Error: apperr.MsgNoPermission})
}

// NotFound answers 404 for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, Response{Error: "Not found"})
}
