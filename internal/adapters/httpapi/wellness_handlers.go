package httpapi

import (
	"net/http"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/wellness"
)

type chatTurnBody struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string         `json:"message"`
	History []chatTurnBody `json:"history"`
}

type chatResponse struct {
	Reply      string       `json:"reply"`
	Sentiment  sentimentDTO `json:"sentiment"`
	Suggestion *string      `json:"suggestion"`
}

func (s *Server) handleWellnessChat(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var body chatRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	history := make([]wellness.Turn, 0, len(body.History))
	for _, t := range body.History {
		history = append(history, wellness.Turn{Sender: t.Sender, Content: t.Content})
	}

	res, err := s.Wellness.Chat(r.Context(), sess, body.Message, history)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}

	out := chatResponse{
		Reply: res.Reply,
		Sentiment: sentimentDTO{
			Sentiment:       res.Sentiment.Sentiment,
			RiskLevel:       res.Sentiment.RiskLevel,
			NeedsEscalation: res.Sentiment.NeedsEscalation,
		},
	}
	if res.Suggestion != "" {
		suggestion := res.Suggestion
		out.Suggestion = &suggestion
	}
	s.writeJSON(w, http.StatusOK, out)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var body analyzeRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}

	sentiment, err := s.Wellness.AnalyzeText(r.Context(), sess, body.Text)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sentimentDTO{
		Sentiment:       sentiment.Sentiment,
		RiskLevel:       sentiment.RiskLevel,
		NeedsEscalation: sentiment.NeedsEscalation,
	})
}

type wellnessHistoryResponse struct {
	Sessions []wellnessSessionDTO `json:"sessions"`
}

func (s *Server) handleWellnessHistory(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	rows, err := s.Wellness.History(r.Context(), sess)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	out := make([]wellnessSessionDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, wellnessSessionFromDomain(row))
	}
	s.writeJSON(w, http.StatusOK, wellnessHistoryResponse{Sessions: out})
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type translateResponse struct {
	Translated string `json:"translated"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var body translateRequest
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "text must be non-empty", nil)
		return
	}
	out := s.Wellness.Translate(r.Context(), body.Text, body.TargetLanguage)
	s.writeJSON(w, http.StatusOK, translateResponse{Translated: out})
}
