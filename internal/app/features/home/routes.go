package home

import (
	uierrors "github.com/dalemusser/youthportal/internal/app/features/errors"
	"github.com/go-chi/chi/v5"
)

// Routes serves the landing endpoint. Mounted at "/", so unknown paths
// end up here and get the JSON 404.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	r.NotFound(uierrors.NotFound)
	return r
}
