// Package handle exposes the tutoring pipeline over HTTP. Handlers stay
// thin: validation and persistence here, all tutoring semantics in the
// extract and tutor packages.
package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"homework-tools/api/internal/config"
	"homework-tools/api/internal/extract"
	"homework-tools/api/internal/llm/types"
	"homework-tools/api/internal/store"
)

type Parser interface {
	ParseSubmission(ctx context.Context, filePath, text, fileType string) (extract.Parsed, error)
}

type Tutor interface {
	Classify(ctx context.Context, problemText string) types.Classification
	Guidance(ctx context.Context, in types.GuidanceInput) types.Guidance
	Practice(ctx context.Context, in types.PracticeInput) []types.PracticeProblem
	Evaluate(ctx context.Context, in types.EvaluateInput) types.Evaluation
	DualResponse(ctx context.Context, userQuery, provider, apiKey string, gradeLevel int) types.DualResponse
}

type Submissions interface {
	Insert(ctx context.Context, s *store.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*store.Submission, error)
}

type Sessions interface {
	Insert(ctx context.Context, s *store.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*store.Session, error)
	End(ctx context.Context, id uuid.UUID) error
}

type Attempts interface {
	Insert(ctx context.Context, a *store.PracticeAttempt) error
	CountCorrectBySession(ctx context.Context, sessionID uuid.UUID) (correct, total int, err error)
}

type Misconceptions interface {
	Insert(ctx context.Context, m *store.Misconception) error
	MarkResolved(ctx context.Context, id uuid.UUID) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]store.Misconception, error)
}

type Handle struct {
	cfg            *config.Config
	parser         Parser
	tutor          Tutor
	subs           Submissions
	sessions       Sessions
	attempts       Attempts
	misconceptions Misconceptions
}

func New(cfg *config.Config, parser Parser, tut Tutor, subs Submissions, sessions Sessions, attempts Attempts, misconceptions Misconceptions) *Handle {
	return &Handle{
		cfg:            cfg,
		parser:         parser,
		tutor:          tut,
		subs:           subs,
		sessions:       sessions,
		attempts:       attempts,
		misconceptions: misconceptions,
	}
}

// Register wires all routes onto the mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/submissions/upload", h.Upload)
	mux.HandleFunc("POST /api/submissions/text", h.Text)
	mux.HandleFunc("GET /api/submissions/{id}", h.GetSubmission)
	mux.HandleFunc("GET /api/submissions/{id}/guidance", h.Guidance)
	mux.HandleFunc("GET /api/submissions/{id}/practice", h.Practice)
	mux.HandleFunc("POST /api/practice/attempt", h.Attempt)
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/end", h.EndSession)
	mux.HandleFunc("GET /api/sessions/{id}/progress", h.SessionProgress)
	mux.HandleFunc("POST /api/misconceptions/{id}/resolve", h.ResolveMisconception)
	mux.HandleFunc("POST /api/ask", h.Ask)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}
