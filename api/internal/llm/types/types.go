// Package types holds the request/response shapes exchanged with the
// tutoring LLM engines. Every response type decodes from the strict JSON
// the prompts ask the model to produce.
package types

import "encoding/json"

// Classification of a single problem. Always fully populated: callers
// substitute defaults wholesale when the model call fails.
type Classification struct {
	Subject       string   `json:"subject"` // math | reading_comp | writing | science | other
	Topic         string   `json:"topic"`
	GradeLevel    int      `json:"grade_level"` // 1..12
	Difficulty    string   `json:"difficulty"`  // basic | intermediate | advanced
	Prerequisites []string `json:"prerequisites"`
	DetectedGaps  []string `json:"detected_gaps"`
}

type Step struct {
	Order int    `json:"order"`
	Text  string `json:"text"`
	Hint  string `json:"hint,omitempty"`
}

type Check struct {
	Text           string `json:"text"`
	ExpectedAnswer string `json:"expected_answer,omitempty"`
	Explanation    string `json:"explanation"`
}

type Reveal struct {
	Level      int    `json:"level"` // 1..4
	Content    string `json:"content"`
	RevealType string `json:"reveal_type"` // hint | partial | full
}

// Guidance is the scaffolded tutoring payload. The final answer may only
// appear in the last reveal level; that policy lives in the prompt, not
// in code.
type Guidance struct {
	MicroExplanation  string   `json:"micro_explanation"`
	StepBreakdown     []Step   `json:"step_breakdown"`
	ErrorWarnings     []string `json:"error_warnings"`
	InteractiveChecks []Check  `json:"interactive_checks"`
	RevealSequence    []Reveal `json:"reveal_sequence"`
}

type GuidanceInput struct {
	ProblemText     string `json:"problem_text"`
	Subject         string `json:"subject"`
	GradeLevel      int    `json:"grade_level"`
	ScaffoldingMode string `json:"scaffolding_mode"` // minimal | moderate | heavy
}

type PracticeProblem struct {
	Text          string `json:"text"`
	Difficulty    string `json:"difficulty"`
	VariationType string `json:"variation_type"` // e.g. "same_structure"
	Solution      string `json:"solution,omitempty"`
}

type PracticeInput struct {
	OriginalProblem string `json:"original_problem"`
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	Difficulty      string `json:"difficulty"`
	Count           int    `json:"count"`
}

type Evaluation struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
	NextHint  string `json:"next_hint,omitempty"`
}

type EvaluateInput struct {
	ProblemText    string `json:"problem_text"`
	StudentAnswer  string `json:"student_answer"`
	ExpectedAnswer string `json:"expected_answer,omitempty"`
}

type ParentContext struct {
	DeeperTerms  []string `json:"deeper_terms"`
	TeachingTips string   `json:"teaching_tips"`
	Explanation  string   `json:"explanation"`
}

// DualResponse pairs a student-facing explanation with context for parents.
type DualResponse struct {
	StudentResponse string        `json:"student_response"`
	ParentContext   ParentContext `json:"parent_context"`
}

// DecodePracticeList accepts either a bare JSON array of practice
// problems or a {"problems": [...]} envelope; models in JSON-object mode
// tend to produce the latter.
func DecodePracticeList(raw []byte) ([]PracticeProblem, error) {
	var list []PracticeProblem
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Problems []PracticeProblem `json:"problems"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Problems, nil
}
