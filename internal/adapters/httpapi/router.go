package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the API HTTP router.
//
// sessionMW resolves the caller's session once per request; individual auth
// decisions stay in the application services so the routing table carries no
// access rules.
func NewRouter(s *Server, sessionMW func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(sessionMW)

	// Health endpoint is unauthenticated and used for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/auth/signup", s.handleSignUp)
	r.Post("/auth/signin", s.handleSignIn)
	r.Post("/auth/signout", s.handleSignOut)

	r.Get("/session", s.handleGetSession)
	r.Post("/session/guest", s.handleGuestSession)

	r.Get("/profile/me", s.handleGetMyProfile)
	r.Patch("/profile/me", s.handleUpdateMyProfile)

	r.Get("/views/{name}", s.handleResolveView)

	r.Post("/help-requests", s.handleCreateHelpRequest)
	r.Get("/help-requests", s.handleListHelpRequests)
	r.Get("/help-requests/mine", s.handleListMyHelpRequests)
	r.Post("/help-requests/{requestID}/activate", s.handleActivateHelpRequest)
	r.Post("/help-requests/{requestID}/complete", s.handleCompleteHelpRequest)
	r.Get("/relief-map", s.handleReliefMap)

	r.Post("/stories", s.handleShareStory)
	r.Get("/stories", s.handleListStories)
	r.Post("/stories/{storyID}/like", s.handleLikeStory)

	r.Post("/wellness/chat", s.handleWellnessChat)
	r.Post("/wellness/analyze", s.handleAnalyzeSentiment)
	r.Get("/wellness/history", s.handleWellnessHistory)
	r.Post("/translate", s.handleTranslate)

	return r
}
