package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

type createHelpRequestBody struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	Location       string `json:"location"`
	ContactInfo    string `json:"contactInfo"`
	PeopleAffected int    `json:"peopleAffected"`
}

func (s *Server) handleCreateHelpRequest(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var body createHelpRequestBody
	if !s.decodeJSON(w, r, &body) {
		return
	}

	req, err := s.Aid.Create(r.Context(), sess, aid.CreateInput{
		Title:          body.Title,
		Description:    body.Description,
		Category:       body.Category,
		Priority:       body.Priority,
		Location:       body.Location,
		ContactInfo:    body.ContactInfo,
		PeopleAffected: body.PeopleAffected,
	})
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, helpRequestFromDomain(req))
}

type helpRequestListResponse struct {
	Requests []helpRequestDTO `json:"requests"`
}

func (s *Server) handleListHelpRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rs, err := s.Aid.List(r.Context(), aid.ListFilter{
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		Status:   q.Get("status"),
	})
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, helpRequestListResponse{Requests: helpRequestsFromDomain(rs)})
}

func (s *Server) handleListMyHelpRequests(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rs, err := s.Aid.ListMine(r.Context(), sess)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, helpRequestListResponse{Requests: helpRequestsFromDomain(rs)})
}

func (s *Server) handleActivateHelpRequest(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := domain.HelpRequestID(chi.URLParam(r, "requestID"))
	req, err := s.Aid.Activate(r.Context(), sess, id)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, helpRequestFromDomain(req))
}

func (s *Server) handleCompleteHelpRequest(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := domain.HelpRequestID(chi.URLParam(r, "requestID"))
	req, err := s.Aid.Complete(r.Context(), sess, id)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, helpRequestFromDomain(req))
}

func (s *Server) handleReliefMap(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	overlay, err := s.Aid.MapData(r.Context(), sess, r.URL.Query().Get("category"))
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mapOverlayFromDomain(overlay))
}
