package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/stories"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

type shareStoryBody struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Anonymous bool   `json:"anonymous"`
}

func (s *Server) handleShareStory(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var body shareStoryBody
	if !s.decodeJSON(w, r, &body) {
		return
	}

	story, err := s.Stories.Share(r.Context(), sess, stories.ShareInput{
		Title:     body.Title,
		Content:   body.Content,
		Category:  body.Category,
		Anonymous: body.Anonymous,
	})
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, storyFromDomain(story))
}

type storyListResponse struct {
	Stories []storyDTO `json:"stories"`
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	ss, err := s.Stories.ListApproved(r.Context())
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	out := make([]storyDTO, 0, len(ss))
	for _, st := range ss {
		out = append(out, storyFromDomain(st))
	}
	s.writeJSON(w, http.StatusOK, storyListResponse{Stories: out})
}

func (s *Server) handleLikeStory(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := domain.StoryID(chi.URLParam(r, "storyID"))
	if err := s.Stories.Like(r.Context(), sess, id); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
