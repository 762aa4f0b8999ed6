package handle

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"homework-tools/api/internal/store"
	"homework-tools/api/internal/textproc"
	"homework-tools/api/internal/tutor"
)

var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

type submissionResponse struct {
	ID              uuid.UUID          `json:"id"`
	SessionID       *uuid.UUID         `json:"session_id,omitempty"`
	Subject         string             `json:"subject"`
	Topic           string             `json:"topic"`
	GradeLevel      int                `json:"grade_level"`
	Difficulty      string             `json:"difficulty"`
	ParsedProblems  []textproc.Problem `json:"parsed_problems"`
	ConfidenceScore int                `json:"confidence_score"`
	CreatedAt       time.Time          `json:"created_at"`
}

func toSubmissionResponse(s *store.Submission) submissionResponse {
	return submissionResponse{
		ID:              s.ID,
		SessionID:       s.SessionID,
		Subject:         s.Subject,
		Topic:           s.Topic,
		GradeLevel:      s.GradeLevel,
		Difficulty:      s.Difficulty,
		ParsedProblems:  s.Problems,
		ConfidenceScore: s.ConfidenceScore,
		CreatedAt:       s.CreatedAt,
	}
}

// Upload accepts a multipart file (image or PDF), stores it under the
// upload dir and runs the full parse + classify pipeline.
func (h *Handle) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.cfg.MaxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !slices.Contains(h.cfg.AllowedExtensions, ext) {
		writeError(w, http.StatusBadRequest, "file type not allowed: "+ext)
		return
	}

	var fileType string
	switch {
	case slices.Contains(imageExtensions, ext):
		fileType = "image"
	case ext == "pdf":
		fileType = "pdf"
	default:
		fileType = "text"
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "upload dir: "+err.Error())
		return
	}
	path := filepath.Join(h.cfg.UploadDir, uuid.NewString()+"."+ext)
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save file: "+err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "save file: "+err.Error())
		return
	}
	dst.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	text := ""
	if fileType == "text" {
		raw, err := os.ReadFile(path)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
			return
		}
		text = string(raw)
	}

	h.createSubmission(ctx, w, r, path, text, fileType)
}

type textRequest struct {
	Text      string     `json:"text"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

// Text accepts typed problem text directly.
func (h *Handle) Text(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if len(strings.TrimSpace(req.Text)) < 5 {
		writeError(w, http.StatusBadRequest, "text too short")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	h.createSubmissionWithSession(ctx, w, "", req.Text, "text", req.SessionID)
}

func (h *Handle) createSubmission(ctx context.Context, w http.ResponseWriter, r *http.Request, path, text, fileType string) {
	var sessionID *uuid.UUID
	if raw := strings.TrimSpace(r.FormValue("session_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad session_id")
			return
		}
		sessionID = &id
	}
	h.createSubmissionWithSession(ctx, w, path, text, fileType, sessionID)
}

func (h *Handle) createSubmissionWithSession(ctx context.Context, w http.ResponseWriter, path, text, fileType string, sessionID *uuid.UUID) {
	parsed, err := h.parser.ParseSubmission(ctx, path, text, fileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parsing error: "+err.Error())
		return
	}

	// Empty extraction still yields one blank fragment; blank fragments
	// get the default classification without an LLM call.
	classification := tutor.DefaultClassification()
	if strings.TrimSpace(parsed.DetectedProblems[0].Text) != "" {
		classification = h.tutor.Classify(ctx, parsed.DetectedProblems[0].Text)
	}

	sub := &store.Submission{
		SessionID:       sessionID,
		FilePath:        path,
		FileType:        fileType,
		RawText:         parsed.RawText,
		Problems:        parsed.DetectedProblems,
		ConfidenceScore: int(parsed.ConfidenceScore),
		Subject:         classification.Subject,
		Topic:           classification.Topic,
		GradeLevel:      classification.GradeLevel,
		Difficulty:      classification.Difficulty,
		Prerequisites:   classification.Prerequisites,
		DetectedGaps:    classification.DetectedGaps,
		CreatedAt:       time.Now(),
	}
	if err := h.subs.Insert(ctx, sub); err != nil {
		writeError(w, http.StatusInternalServerError, "store submission: "+err.Error())
		return
	}

	// Gaps detected at classification time feed the session's
	// misconception log; losing one is not worth failing the upload.
	if sessionID != nil {
		for _, gap := range classification.DetectedGaps {
			m := &store.Misconception{
				SessionID:      sessionID,
				Topic:          classification.Topic,
				Description:    gap,
				ExampleProblem: parsed.DetectedProblems[0].Text,
			}
			if err := h.misconceptions.Insert(ctx, m); err != nil {
				log.Printf("record misconception: %v", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

func (h *Handle) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad submission id")
		return
	}
	sub, err := h.subs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// submissionProblem resolves a submission and one of its problem
// fragments for the guidance/practice endpoints.
func (h *Handle) submissionProblem(w http.ResponseWriter, r *http.Request) (*store.Submission, textproc.Problem, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad submission id")
		return nil, textproc.Problem{}, false
	}
	sub, err := h.subs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return nil, textproc.Problem{}, false
	}
	idx := queryInt(r, "problem_index", 0)
	if idx < 0 || idx >= len(sub.Problems) {
		writeError(w, http.StatusBadRequest, "invalid problem index")
		return nil, textproc.Problem{}, false
	}
	return sub, sub.Problems[idx], true
}
