package llm

import (
	"context"

	"homework-tools/api/internal/llm/types"
)

// Engine is one LLM provider. Implementations return errors as-is; the
// tutor service above them decides what degrades to a default payload.
type Engine interface {
	Name() string
	GetModel() string
	// Transcribe runs one multimodal extraction call over an image or a
	// single-page PDF and returns the raw transcribed text.
	Transcribe(ctx context.Context, data []byte, mime string) (string, error)
	Classify(ctx context.Context, problemText string) (types.Classification, error)
	Guidance(ctx context.Context, in types.GuidanceInput) (types.Guidance, error)
	Practice(ctx context.Context, in types.PracticeInput) ([]types.PracticeProblem, error)
	Evaluate(ctx context.Context, in types.EvaluateInput) (types.Evaluation, error)
	DualResponse(ctx context.Context, userQuery string, gradeLevel int) (types.DualResponse, error)
}
