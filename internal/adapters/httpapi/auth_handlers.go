package httpapi

import (
	"net/http"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

type signUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
	Location *string `json:"location"`
}

type signUpResponse struct {
	UserID      string  `json:"userId"`
	AccessToken *string `json:"accessToken"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var body signUpRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	in := session.SignUpInput{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
		Phone:    body.Phone,
		Location: body.Location,
	}
	if body.Role != "" {
		in.Role = domain.ParseRole(body.Role)
	}

	res, err := s.Sessions.SignUp(r.Context(), in)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}

	out := signUpResponse{UserID: string(res.Subject)}
	if res.AccessToken != "" {
		token := res.AccessToken
		out.AccessToken = &token
	}
	s.writeJSON(w, http.StatusCreated, out)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string     `json:"accessToken"`
	ExpiresIn   int        `json:"expiresIn"`
	Session     sessionDTO `json:"session"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var body signInRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	sess, res, err := s.Sessions.SignIn(r.Context(), session.SignInInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}

	s.writeJSON(w, http.StatusOK, signInResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   res.ExpiresIn,
		Session:     sessionFromDomain(sess),
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
		return
	}
	if _, err := s.Sessions.SignOut(r.Context(), token); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	s.writeJSON(w, http.StatusOK, sessionFromDomain(sess))
}

func (s *Server) handleGuestSession(w http.ResponseWriter, r *http.Request) {
	sess := s.Sessions.GuestSession()
	s.writeJSON(w, http.StatusOK, sessionFromDomain(sess))
}
