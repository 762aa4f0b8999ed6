package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"homework-tools/api/internal/llm/types"
	"homework-tools/api/internal/store"
)

// Practice generates variants of one problem of a submission.
func (h *Handle) Practice(w http.ResponseWriter, r *http.Request) {
	sub, problem, ok := h.submissionProblem(w, r)
	if !ok {
		return
	}

	count := queryInt(r, "count", 3)
	if count < 1 || count > 10 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 10")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	subject, topic, difficulty := sub.Subject, sub.Topic, sub.Difficulty
	if subject == "" {
		subject = "other"
	}
	if topic == "" {
		topic = "unknown"
	}
	if difficulty == "" {
		difficulty = "intermediate"
	}

	problems := h.tutor.Practice(ctx, types.PracticeInput{
		OriginalProblem: problem.Text,
		Subject:         subject,
		Topic:           topic,
		Difficulty:      difficulty,
		Count:           count,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id":     sub.ID,
		"practice_problems": problems,
	})
}

type attemptRequest struct {
	SessionID      *uuid.UUID `json:"session_id,omitempty"`
	ProblemID      uuid.UUID  `json:"problem_id"`
	ProblemText    string     `json:"problem_text"`
	StudentAnswer  string     `json:"student_answer"`
	ExpectedAnswer string     `json:"expected_answer,omitempty"`
	HintsUsed      int        `json:"hints_used"`
	TimeSpent      int        `json:"time_spent"`
}

// Attempt evaluates a student's answer to a practice problem and records
// the attempt.
func (h *Handle) Attempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if req.ProblemText == "" || req.StudentAnswer == "" {
		writeError(w, http.StatusBadRequest, "problem_text and student_answer are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	eval := h.tutor.Evaluate(ctx, types.EvaluateInput{
		ProblemText:    req.ProblemText,
		StudentAnswer:  req.StudentAnswer,
		ExpectedAnswer: req.ExpectedAnswer,
	})

	attempt := &store.PracticeAttempt{
		SessionID:     req.SessionID,
		ProblemID:     req.ProblemID,
		StudentAnswer: req.StudentAnswer,
		IsCorrect:     eval.IsCorrect,
		HintsUsed:     req.HintsUsed,
		TimeSpent:     req.TimeSpent,
	}
	if err := h.attempts.Insert(ctx, attempt); err != nil {
		writeError(w, http.StatusInternalServerError, "store attempt: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         attempt.ID,
		"is_correct": eval.IsCorrect,
		"feedback":   eval.Feedback,
		"next_hint":  eval.NextHint,
	})
}
