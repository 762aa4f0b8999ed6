package handle

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type askRequest struct {
	UserQuery  string `json:"user_query"`
	Provider   string `json:"provider,omitempty"` // openai | gemini; default gemini
	APIKey     string `json:"api_key,omitempty"`  // BYOK; never persisted
	GradeLevel int    `json:"grade_level,omitempty"`
}

// Ask answers a free-form homework question with a dual student/parent
// response on the requested provider.
func (h *Handle) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.UserQuery) == "" {
		writeError(w, http.StatusBadRequest, "user_query is required")
		return
	}
	grade := req.GradeLevel
	if grade == 0 {
		grade = 8
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	out := h.tutor.DualResponse(ctx, req.UserQuery, req.Provider, req.APIKey, grade)
	writeJSON(w, http.StatusOK, out)
}
