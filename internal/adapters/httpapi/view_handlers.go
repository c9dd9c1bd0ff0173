package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/views"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

type viewResponse struct {
	Requested string `json:"requested"`
	Rendered  string `json:"rendered"`
}

// handleResolveView answers what the client should render for a requested
// view name. Unknown names fold to the default view before gating.
func (s *Server) handleResolveView(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	requested := domain.ParseView(chi.URLParam(r, "name"))
	rendered := views.Resolve(requested, sess)
	s.writeJSON(w, http.StatusOK, viewResponse{
		Requested: string(requested),
		Rendered:  string(rendered),
	})
}
