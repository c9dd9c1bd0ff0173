package httpapi

import (
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess.Guest {
		writeError(w, r, http.StatusForbidden, "GUEST_SESSION", "Guest sessions have no stored profile.", nil)
		return
	}
	if !sess.Authenticated() {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "No authenticated identity.", nil)
		return
	}
	if sess.Profile == nil {
		writeError(w, r, http.StatusNotFound, "PROFILE_NOT_PROVISIONED", "No profile exists for the authenticated identity.", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, profileFromDomain(*sess.Profile))
}

type updateProfileRequest struct {
	FullName        nullable.Nullable[string]         `json:"fullName,omitempty"`
	Phone           nullable.Nullable[string]         `json:"phone,omitempty"`
	Location        nullable.Nullable[string]         `json:"location,omitempty"`
	Coordinates     nullable.Nullable[coordinatesDTO] `json:"coordinates,omitempty"`
	ServicesOffered nullable.Nullable[[]string]       `json:"servicesOffered,omitempty"`
}

func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var body updateProfileRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	in := session.UpdateProfileInput{
		FullName: optionalFromNullable(body.FullName),
		Phone:    optionalFromNullable(body.Phone),
		Location: optionalFromNullable(body.Location),
	}
	if body.Coordinates.IsSpecified() {
		if body.Coordinates.IsNull() {
			in.Coordinates = session.Null[domain.Coordinates]()
		} else {
			c, err := body.Coordinates.Get()
			if err == nil {
				in.Coordinates = session.Some(domain.Coordinates{
					Latitude:  c.Latitude,
					Longitude: c.Longitude,
				})
			}
		}
	}
	in.ServicesOffered = optionalFromNullable(body.ServicesOffered)

	updated, err := s.Sessions.UpdateProfile(r.Context(), sess, in)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profileFromDomain(updated))
}

func optionalFromNullable[T any](n nullable.Nullable[T]) session.Optional[T] {
	if !n.IsSpecified() {
		return session.Unspecified[T]()
	}
	if n.IsNull() {
		return session.Null[T]()
	}
	v, err := n.Get()
	if err != nil {
		return session.Unspecified[T]()
	}
	return session.Some(v)
}
