package extract

import (
	"context"
	"errors"

	"homework-tools/api/internal/textproc"
)

// ErrInvalidInput marks the one client error the pipeline produces: no
// text and no usable file. Everything else degrades to low confidence.
var ErrInvalidInput = errors.New("invalid submission: must provide text or file")

// Parsed is the uniform result record the persistence layer stores.
type Parsed struct {
	RawText          string             `json:"raw_text"`
	CleanedText      string             `json:"cleaned_text"`
	DetectedProblems []textproc.Problem `json:"detected_problems"`
	ConfidenceScore  float64            `json:"confidence_score"`
	Format           string             `json:"format"`
}

// Backend is the extraction seam; tests swap in fakes here.
type Backend interface {
	FromImage(ctx context.Context, path string) (string, float64)
	FromPDF(ctx context.Context, path string) (string, float64)
}

type Orchestrator struct {
	backend Backend
}

func NewOrchestrator(backend Backend) *Orchestrator {
	return &Orchestrator{backend: backend}
}

// ParseSubmission selects the extraction path, cleans the text and splits
// it into problems. Direct text wins over the declared type; extraction
// failures surface as low-confidence results, never as errors.
func (o *Orchestrator) ParseSubmission(ctx context.Context, filePath, text, fileType string) (Parsed, error) {
	var (
		raw        string
		confidence float64
	)
	switch {
	case text != "":
		// Any non-empty text wins, whitespace included: the caller
		// declared a text submission, so no extraction is attempted.
		raw = text
		confidence = directTextConfidence
	case fileType == "image" && filePath != "":
		raw, confidence = o.backend.FromImage(ctx, filePath)
	case fileType == "pdf" && filePath != "":
		raw, confidence = o.backend.FromPDF(ctx, filePath)
	default:
		return Parsed{}, ErrInvalidInput
	}

	cleaned := textproc.Clean(raw)
	return Parsed{
		RawText:          raw,
		CleanedText:      cleaned,
		DetectedProblems: textproc.DetectProblems(cleaned),
		ConfidenceScore:  confidence,
		Format:           fileType,
	}, nil
}
