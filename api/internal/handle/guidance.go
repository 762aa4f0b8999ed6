package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homework-tools/api/internal/llm/types"
)

// Guidance generates scaffolded tutoring guidance for one problem of a
// submission. The scaffolding mode comes from the owning session,
// defaulting to moderate.
func (h *Handle) Guidance(w http.ResponseWriter, r *http.Request) {
	sub, problem, ok := h.submissionProblem(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	mode := "moderate"
	if sub.SessionID != nil {
		if sess, err := h.sessions.GetByID(ctx, *sub.SessionID); err == nil && sess.ScaffoldingMode != "" {
			mode = sess.ScaffoldingMode
		}
	}

	subject := sub.Subject
	if subject == "" {
		subject = "other"
	}
	grade := sub.GradeLevel
	if grade == 0 {
		grade = 8
	}

	out := h.tutor.Guidance(ctx, types.GuidanceInput{
		ProblemText:     problem.Text,
		Subject:         subject,
		GradeLevel:      grade,
		ScaffoldingMode: mode,
	})
	writeJSON(w, http.StatusOK, out)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func queryInt(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
