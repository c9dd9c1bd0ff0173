package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/stories"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/wellness"
)

// Server is the HTTP adapter. It decodes requests, threads the resolved
// session into the application services and encodes their answers; it holds no
// business rules of its own.
type Server struct {
	Sessions *session.Manager
	Aid      *aid.Service
	Stories  *stories.Service
	Wellness *wellness.Service

	Log *zap.Logger
}

func NewServer(sessions *session.Manager, aidSvc *aid.Service, storiesSvc *stories.Service, wellnessSvc *wellness.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Sessions: sessions,
		Aid:      aidSvc,
		Stories:  storiesSvc,
		Wellness: wellnessSvc,
		Log:      log,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Warn("response encoding failed", zap.Error(err))
	}
}

// decodeJSON rejects malformed bodies with a 422 and reports whether decoding
// succeeded; handlers return immediately on false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "missing request body", nil)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", map[string]any{"body": err.Error()})
		return false
	}
	return true
}
