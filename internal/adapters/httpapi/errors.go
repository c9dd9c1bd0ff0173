package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/stories"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/wellness"
)

// ErrorResponse is the wire shape of every non-2xx body.
type ErrorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestID nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	var er ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(details)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestID = nullable.NewNullableWithValue(rid)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(er)
}

// writeAppError maps a typed application error onto the envelope. Anything
// untyped is a 500 with the detail kept server-side.
func writeAppError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if se := (*session.Error)(nil); errors.As(err, &se) {
		writeError(w, r, se.Status, se.Code, se.Message, se.Details)
		return
	}
	if ae := (*aid.Error)(nil); errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	if se := (*stories.Error)(nil); errors.As(err, &se) {
		writeError(w, r, se.Status, se.Code, se.Message, se.Details)
		return
	}
	if we := (*wellness.Error)(nil); errors.As(err, &we) {
		writeError(w, r, we.Status, we.Code, we.Message, we.Details)
		return
	}

	if log != nil {
		log.Error("unhandled request error",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
