// Package openai implements the tutoring engine on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"homework-tools/api/internal/llm/prompt"
	"homework-tools/api/internal/llm/types"
	"homework-tools/api/internal/util"
)

type Engine struct {
	APIKey         string
	Model          string // classification / evaluation
	ReasoningModel string // vision / guidance / practice
	api            *openai.Client
}

func New(key, model, reasoningModel string) *Engine {
	return &Engine{
		APIKey:         key,
		Model:          model,
		ReasoningModel: reasoningModel,
		api:            openai.NewClient(key),
	}
}

// WithBaseURL points the engine at an OpenAI-compatible endpoint.
func (e *Engine) WithBaseURL(baseURL string) *Engine {
	cfg := openai.DefaultConfig(e.APIKey)
	cfg.BaseURL = baseURL
	e.api = openai.NewClientWithConfig(cfg)
	return e
}

func (e *Engine) Name() string     { return "openai" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Transcribe(ctx context.Context, data []byte, mime string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}
	b64 := base64.StdEncoding.EncodeToString(data)

	resp, err := e.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.ReasoningModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt.Transcribe},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: util.MakeDataURL(mime, b64),
						},
					},
				},
			},
		},
		MaxTokens:   1000,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai transcribe: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (e *Engine) Classify(ctx context.Context, problemText string) (types.Classification, error) {
	var out types.Classification
	err := e.jsonCall(ctx, e.Model, prompt.ClassifySystem, prompt.Classify(problemText), 0.3, &out)
	return out, err
}

func (e *Engine) Guidance(ctx context.Context, in types.GuidanceInput) (types.Guidance, error) {
	var out types.Guidance
	user := prompt.Guidance(in.ProblemText, in.Subject, in.GradeLevel, in.ScaffoldingMode)
	err := e.jsonCall(ctx, e.ReasoningModel, prompt.GuidanceSystem, user, 0.7, &out)
	return out, err
}

func (e *Engine) Practice(ctx context.Context, in types.PracticeInput) ([]types.PracticeProblem, error) {
	user := prompt.Practice(in.OriginalProblem, in.Subject, in.Topic, in.Difficulty, in.Count)
	raw, err := e.rawJSONCall(ctx, e.ReasoningModel, prompt.PracticeSystem, user, 0.8)
	if err != nil {
		return nil, err
	}
	return types.DecodePracticeList(raw)
}

func (e *Engine) Evaluate(ctx context.Context, in types.EvaluateInput) (types.Evaluation, error) {
	var out types.Evaluation
	user := prompt.Evaluate(in.ProblemText, in.StudentAnswer, in.ExpectedAnswer)
	err := e.jsonCall(ctx, e.Model, prompt.EvaluateSystem, user, 0.5, &out)
	return out, err
}

func (e *Engine) DualResponse(ctx context.Context, userQuery string, gradeLevel int) (types.DualResponse, error) {
	var out types.DualResponse
	err := e.jsonCall(ctx, e.ReasoningModel, "", prompt.Dual(userQuery, gradeLevel), 0.7, &out)
	return out, err
}

// jsonCall runs one JSON-mode chat completion and unmarshals the reply
// into out.
func (e *Engine) jsonCall(ctx context.Context, model, system, user string, temperature float32, out any) error {
	raw, err := e.rawJSONCall(ctx, model, system, user, temperature)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openai: bad JSON: %w", err)
	}
	return nil
}

func (e *Engine) rawJSONCall(ctx context.Context, model, system, user string, temperature float32) ([]byte, error) {
	if e.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is empty")
	}
	var msgs []openai.ChatCompletionMessage
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: user})

	resp, err := e.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices")
	}
	return []byte(util.StripCodeFences(resp.Choices[0].Message.Content)), nil
}
