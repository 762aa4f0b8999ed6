// Package tutor is the generation layer: classification, scaffolded
// guidance, practice variants, answer evaluation and the dual
// student/parent response. It owns the "always respond" policy: every
// call that fails or returns an unusable payload degrades to a complete
// default shape, never to an error or a partial record.
package tutor

import (
	"context"
	"log"
	"strings"

	"homework-tools/api/internal/config"
	"homework-tools/api/internal/llm"
	"homework-tools/api/internal/llm/gemini"
	"homework-tools/api/internal/llm/openai"
	"homework-tools/api/internal/llm/types"
)

type Service struct {
	OpenAI llm.Engine
	Gemini llm.Engine

	openAIModel          string
	openAIReasoningModel string
	geminiModel          string
}

func New(cfg *config.Config) *Service {
	return &Service{
		OpenAI:               openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIReasoningModel),
		Gemini:               gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		openAIModel:          cfg.OpenAIModel,
		openAIReasoningModel: cfg.OpenAIReasoningModel,
		geminiModel:          cfg.GeminiModel,
	}
}

// NewWithEngines wires explicit engines; tests use it with fakes.
func NewWithEngines(openAI, gem llm.Engine) *Service {
	return &Service{OpenAI: openAI, Gemini: gem}
}

// Engine resolves the provider tag and an optional caller-supplied key
// (BYOK). A custom key always gets a freshly constructed engine, so the
// default engines keep their own credentials; an unrecognized provider
// falls back to the default one instead of failing the request. Keys are
// never persisted.
func (s *Service) Engine(provider, apiKey string) llm.Engine {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		if apiKey != "" {
			return openai.New(apiKey, s.openAIModel, s.openAIReasoningModel)
		}
		return s.OpenAI
	case "gemini":
		if apiKey != "" {
			return gemini.New(apiKey, s.geminiModel)
		}
		return s.Gemini
	default:
		return s.Gemini
	}
}

func DefaultClassification() types.Classification {
	return types.Classification{
		Subject:       "other",
		Topic:         "unknown",
		GradeLevel:    8,
		Difficulty:    "intermediate",
		Prerequisites: []string{},
		DetectedGaps:  []string{},
	}
}

func DefaultGuidance() types.Guidance {
	return types.Guidance{
		MicroExplanation:  "Let's work through this step by step.",
		StepBreakdown:     []types.Step{},
		ErrorWarnings:     []string{},
		InteractiveChecks: []types.Check{},
		RevealSequence:    []types.Reveal{},
	}
}

func DefaultEvaluation() types.Evaluation {
	return types.Evaluation{
		IsCorrect: false,
		Feedback:  "Let's try again!",
		NextHint:  "Review the problem and try once more.",
	}
}

func DefaultDualResponse() types.DualResponse {
	return types.DualResponse{
		StudentResponse: "I'm having trouble connecting to my brain right now. Please try again!",
		ParentContext: types.ParentContext{
			DeeperTerms:  []string{},
			TeachingTips: "Check internet connection or API status.",
			Explanation:  "Error generating response.",
		},
	}
}

// Classify labels a problem with subject, topic, grade level and
// difficulty. The result is always fully populated.
func (s *Service) Classify(ctx context.Context, problemText string) types.Classification {
	out, err := s.OpenAI.Classify(ctx, problemText)
	if err != nil {
		log.Printf("tutor: classification: %v", err)
		return DefaultClassification()
	}
	if out.Subject == "" || out.Topic == "" || out.GradeLevel == 0 || out.Difficulty == "" {
		log.Print("tutor: classification: incomplete payload, using defaults")
		return DefaultClassification()
	}
	if out.Prerequisites == nil {
		out.Prerequisites = []string{}
	}
	if out.DetectedGaps == nil {
		out.DetectedGaps = []string{}
	}
	return out
}

func (s *Service) Guidance(ctx context.Context, in types.GuidanceInput) types.Guidance {
	out, err := s.OpenAI.Guidance(ctx, in)
	if err != nil {
		log.Printf("tutor: guidance: %v", err)
		return DefaultGuidance()
	}
	if out.MicroExplanation == "" {
		log.Print("tutor: guidance: incomplete payload, using defaults")
		return DefaultGuidance()
	}
	if out.StepBreakdown == nil {
		out.StepBreakdown = []types.Step{}
	}
	if out.ErrorWarnings == nil {
		out.ErrorWarnings = []string{}
	}
	if out.InteractiveChecks == nil {
		out.InteractiveChecks = []types.Check{}
	}
	if out.RevealSequence == nil {
		out.RevealSequence = []types.Reveal{}
	}
	return out
}

// Practice generates variants of the original problem. Failures and
// unrecognized payload shapes both yield an empty list; no fallback
// problems are synthesized.
func (s *Service) Practice(ctx context.Context, in types.PracticeInput) []types.PracticeProblem {
	out, err := s.OpenAI.Practice(ctx, in)
	if err != nil {
		log.Printf("tutor: practice: %v", err)
		return []types.PracticeProblem{}
	}
	if out == nil {
		out = []types.PracticeProblem{}
	}
	return out
}

func (s *Service) Evaluate(ctx context.Context, in types.EvaluateInput) types.Evaluation {
	out, err := s.OpenAI.Evaluate(ctx, in)
	if err != nil {
		log.Printf("tutor: evaluation: %v", err)
		return DefaultEvaluation()
	}
	if out.Feedback == "" {
		return DefaultEvaluation()
	}
	return out
}

// DualResponse answers a free-form query with a student explanation plus
// parent context, on the requested provider (BYOK supported).
func (s *Service) DualResponse(ctx context.Context, userQuery, provider, apiKey string, gradeLevel int) types.DualResponse {
	eng := s.Engine(provider, apiKey)
	out, err := eng.DualResponse(ctx, userQuery, gradeLevel)
	if err != nil {
		log.Printf("tutor: dual response (%s): %v", eng.Name(), err)
		return DefaultDualResponse()
	}
	if out.StudentResponse == "" {
		return DefaultDualResponse()
	}
	if out.ParentContext.DeeperTerms == nil {
		out.ParentContext.DeeperTerms = []string{}
	}
	return out
}
