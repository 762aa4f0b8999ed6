package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework-tools/api/internal/config"
	"homework-tools/api/internal/llm/gemini"
	"homework-tools/api/internal/llm/openai"
	"homework-tools/api/internal/llm/types"
)

// failingEngine errors on every call, exercising the default payloads.
type failingEngine struct{}

func (failingEngine) Name() string     { return "failing" }
func (failingEngine) GetModel() string { return "none" }
func (failingEngine) Transcribe(context.Context, []byte, string) (string, error) {
	return "", errors.New("boom")
}
func (failingEngine) Classify(context.Context, string) (types.Classification, error) {
	return types.Classification{}, errors.New("boom")
}
func (failingEngine) Guidance(context.Context, types.GuidanceInput) (types.Guidance, error) {
	return types.Guidance{}, errors.New("boom")
}
func (failingEngine) Practice(context.Context, types.PracticeInput) ([]types.PracticeProblem, error) {
	return nil, errors.New("boom")
}
func (failingEngine) Evaluate(context.Context, types.EvaluateInput) (types.Evaluation, error) {
	return types.Evaluation{}, errors.New("boom")
}
func (failingEngine) DualResponse(context.Context, string, int) (types.DualResponse, error) {
	return types.DualResponse{}, errors.New("boom")
}

// cannedEngine returns fixed payloads.
type cannedEngine struct {
	failingEngine
	classification types.Classification
	guidance       types.Guidance
	practice       []types.PracticeProblem
}

func (e cannedEngine) Classify(context.Context, string) (types.Classification, error) {
	return e.classification, nil
}
func (e cannedEngine) Guidance(context.Context, types.GuidanceInput) (types.Guidance, error) {
	return e.guidance, nil
}
func (e cannedEngine) Practice(context.Context, types.PracticeInput) ([]types.PracticeProblem, error) {
	return e.practice, nil
}

func TestClassifyFailureYieldsCompleteDefaults(t *testing.T) {
	s := NewWithEngines(failingEngine{}, failingEngine{})

	got := s.Classify(context.Background(), "2x + 5 = 13")

	assert.Equal(t, "other", got.Subject)
	assert.Equal(t, "unknown", got.Topic)
	assert.Equal(t, 8, got.GradeLevel)
	assert.Equal(t, "intermediate", got.Difficulty)
	assert.NotNil(t, got.Prerequisites)
	assert.Empty(t, got.Prerequisites)
	assert.NotNil(t, got.DetectedGaps)
	assert.Empty(t, got.DetectedGaps)
}

func TestClassifyIncompletePayloadReplacedWholesale(t *testing.T) {
	s := NewWithEngines(cannedEngine{classification: types.Classification{Subject: "math"}}, failingEngine{})

	// grade_level/difficulty missing: no partial-field merging.
	got := s.Classify(context.Background(), "2x + 5 = 13")
	assert.Equal(t, DefaultClassification(), got)
}

func TestClassifyNormalizesNilLists(t *testing.T) {
	s := NewWithEngines(cannedEngine{classification: types.Classification{
		Subject: "math", Topic: "algebra", GradeLevel: 8, Difficulty: "basic",
	}}, failingEngine{})

	got := s.Classify(context.Background(), "2x + 5 = 13")
	assert.Equal(t, "math", got.Subject)
	assert.NotNil(t, got.Prerequisites)
	assert.NotNil(t, got.DetectedGaps)
}

func TestGuidanceFailureYieldsCompleteDefaults(t *testing.T) {
	s := NewWithEngines(failingEngine{}, failingEngine{})

	got := s.Guidance(context.Background(), types.GuidanceInput{ProblemText: "2x + 5 = 13"})

	assert.Equal(t, "Let's work through this step by step.", got.MicroExplanation)
	assert.NotNil(t, got.StepBreakdown)
	assert.NotNil(t, got.ErrorWarnings)
	assert.NotNil(t, got.InteractiveChecks)
	assert.NotNil(t, got.RevealSequence)
	assert.Empty(t, got.StepBreakdown)
}

func TestPracticeFailureYieldsEmptyList(t *testing.T) {
	s := NewWithEngines(failingEngine{}, failingEngine{})

	got := s.Practice(context.Background(), types.PracticeInput{OriginalProblem: "2x + 5 = 13", Count: 3})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPracticeNilNormalizedToEmpty(t *testing.T) {
	s := NewWithEngines(cannedEngine{practice: nil}, failingEngine{})

	got := s.Practice(context.Background(), types.PracticeInput{Count: 3})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluateFailureYieldsDefaults(t *testing.T) {
	s := NewWithEngines(failingEngine{}, failingEngine{})

	got := s.Evaluate(context.Background(), types.EvaluateInput{ProblemText: "p", StudentAnswer: "a"})
	assert.False(t, got.IsCorrect)
	assert.Equal(t, "Let's try again!", got.Feedback)
	assert.Equal(t, "Review the problem and try once more.", got.NextHint)
}

func TestDualResponseFailureYieldsDefaults(t *testing.T) {
	s := NewWithEngines(failingEngine{}, failingEngine{})

	got := s.DualResponse(context.Background(), "help me", "gemini", "", 8)
	assert.Equal(t, "I'm having trouble connecting to my brain right now. Please try again!", got.StudentResponse)
	assert.NotNil(t, got.ParentContext.DeeperTerms)
	assert.Equal(t, "Error generating response.", got.ParentContext.Explanation)
}

func newConfiguredService() *Service {
	return New(&config.Config{
		OpenAIAPIKey:         "service-openai-key",
		OpenAIModel:          "gpt-4o-mini",
		OpenAIReasoningModel: "gpt-4o",
		GeminiAPIKey:         "service-gemini-key",
		GeminiModel:          "gemini-2.5-flash",
	})
}

func TestEngineBYOKReturnsFreshClient(t *testing.T) {
	s := newConfiguredService()

	eng := s.Engine("openai", "caller-key")
	oe, ok := eng.(*openai.Engine)
	require.True(t, ok)
	assert.Equal(t, "caller-key", oe.APIKey)

	// The default engine keeps the service credential.
	def := s.OpenAI.(*openai.Engine)
	assert.Equal(t, "service-openai-key", def.APIKey)
	assert.NotSame(t, def, oe)
}

func TestEngineBYOKGemini(t *testing.T) {
	s := newConfiguredService()

	eng := s.Engine("gemini", "caller-key")
	ge, ok := eng.(*gemini.Engine)
	require.True(t, ok)
	assert.Equal(t, "caller-key", ge.APIKey)
	assert.Equal(t, "service-gemini-key", s.Gemini.(*gemini.Engine).APIKey)
}

func TestEngineDefaultsWithoutKey(t *testing.T) {
	s := newConfiguredService()

	assert.Same(t, s.OpenAI, s.Engine("openai", ""))
	assert.Same(t, s.Gemini, s.Engine("gemini", ""))
}

func TestEngineUnknownProviderFallsBackToGemini(t *testing.T) {
	s := newConfiguredService()

	assert.Same(t, s.Gemini, s.Engine("anthropic", ""))
	assert.Same(t, s.Gemini, s.Engine("", ""))
}
