package handle

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"homework-tools/api/internal/store"
)

type sessionRequest struct {
	StudentLevel    int    `json:"student_level,omitempty"`
	ScaffoldingMode string `json:"scaffolding_mode,omitempty"`
	Pace            string `json:"pace,omitempty"`
}

// CreateSession starts a learning session.
func (h *Handle) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	sess := &store.Session{
		StudentLevel:    req.StudentLevel,
		ScaffoldingMode: req.ScaffoldingMode,
		Pace:            req.Pace,
	}
	if err := h.sessions.Insert(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "store session: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":               sess.ID,
		"student_level":    sess.StudentLevel,
		"pace":             sess.Pace,
		"scaffolding_mode": sess.ScaffoldingMode,
		"started_at":       sess.StartedAt,
	})
}

// EndSession stamps the session finished; ending twice is a 404.
func (h *Handle) EndSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad session id")
		return
	}
	if err := h.sessions.End(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found or already ended")
			return
		}
		writeError(w, http.StatusInternalServerError, "end session: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "ended": true})
}

type misconceptionView struct {
	ID             uuid.UUID  `json:"id"`
	Topic          string     `json:"topic"`
	Description    string     `json:"description"`
	ExampleProblem string     `json:"example_problem,omitempty"`
	DetectedAt     time.Time  `json:"detected_at"`
	Resolved       bool       `json:"resolved"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// SessionProgress summarizes a session for the parent view: practice
// accuracy plus the gaps detected so far.
func (h *Handle) SessionProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad session id")
		return
	}
	if _, err := h.sessions.GetByID(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	correct, total, err := h.attempts.CountCorrectBySession(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "count attempts: "+err.Error())
		return
	}
	list, err := h.misconceptions.ListBySession(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list misconceptions: "+err.Error())
		return
	}

	views := make([]misconceptionView, 0, len(list))
	for _, m := range list {
		views = append(views, misconceptionView{
			ID:             m.ID,
			Topic:          m.Topic,
			Description:    m.Description,
			ExampleProblem: m.ExampleProblem,
			DetectedAt:     m.DetectedAt,
			Resolved:       m.Resolved,
			ResolvedAt:     m.ResolvedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":       id,
		"correct_attempts": correct,
		"total_attempts":   total,
		"misconceptions":   views,
	})
}

// ResolveMisconception flips a detected gap to resolved.
func (h *Handle) ResolveMisconception(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad misconception id")
		return
	}
	if err := h.misconceptions.MarkResolved(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "misconception not found or already resolved")
			return
		}
		writeError(w, http.StatusInternalServerError, "resolve: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "resolved": true})
}
