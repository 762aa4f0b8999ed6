// Package gemini implements the tutoring engine on the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"homework-tools/api/internal/llm/prompt"
	"homework-tools/api/internal/llm/types"
	"homework-tools/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

// New binds an engine to a key and model. The genai client is constructed
// per call, so a caller-supplied key never touches process-wide state.
func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Transcribe(ctx context.Context, data []byte, mime string) (string, error) {
	out, err := e.generate(ctx, "", false,
		genai.Text(prompt.Transcribe),
		genai.Blob{MIMEType: mime, Data: data},
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (e *Engine) Classify(ctx context.Context, problemText string) (types.Classification, error) {
	var out types.Classification
	err := e.jsonCall(ctx, prompt.ClassifySystem, prompt.Classify(problemText), &out)
	return out, err
}

func (e *Engine) Guidance(ctx context.Context, in types.GuidanceInput) (types.Guidance, error) {
	var out types.Guidance
	user := prompt.Guidance(in.ProblemText, in.Subject, in.GradeLevel, in.ScaffoldingMode)
	err := e.jsonCall(ctx, prompt.GuidanceSystem, user, &out)
	return out, err
}

func (e *Engine) Practice(ctx context.Context, in types.PracticeInput) ([]types.PracticeProblem, error) {
	user := prompt.Practice(in.OriginalProblem, in.Subject, in.Topic, in.Difficulty, in.Count)
	raw, err := e.generate(ctx, prompt.PracticeSystem, true, genai.Text(user))
	if err != nil {
		return nil, err
	}
	return types.DecodePracticeList([]byte(util.StripCodeFences(raw)))
}

func (e *Engine) Evaluate(ctx context.Context, in types.EvaluateInput) (types.Evaluation, error) {
	var out types.Evaluation
	user := prompt.Evaluate(in.ProblemText, in.StudentAnswer, in.ExpectedAnswer)
	err := e.jsonCall(ctx, prompt.EvaluateSystem, user, &out)
	return out, err
}

func (e *Engine) DualResponse(ctx context.Context, userQuery string, gradeLevel int) (types.DualResponse, error) {
	var out types.DualResponse
	err := e.jsonCall(ctx, "", prompt.Dual(userQuery, gradeLevel), &out)
	return out, err
}

func (e *Engine) jsonCall(ctx context.Context, system, user string, out any) error {
	raw, err := e.generate(ctx, system, true, genai.Text(user))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(util.StripCodeFences(raw)), out); err != nil {
		return fmt.Errorf("gemini: bad JSON: %w", err)
	}
	return nil
}

// generate runs one content generation call and returns the concatenated
// text parts of the first candidate.
func (e *Engine) generate(ctx context.Context, system string, wantJSON bool, parts ...genai.Part) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	cfg := genai.GenerationConfig{Temperature: ptrFloat32(0)}
	if wantJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	m.GenerationConfig = cfg
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("gemini: no text parts in response")
	}
	return b.String(), nil
}

func ptrFloat32(f float32) *float32 { return &f }
