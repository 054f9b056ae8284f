package interview

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/interview-coach/internal/models"
)

const MaxQuestionCount = 100

// TextGenerator is the text-generation collaborator.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type GenerateRequest struct {
	Company    string              `json:"company" validate:"required"`
	JobTitle   string              `json:"job_title" validate:"required"`
	Difficulty models.Difficulty   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Kind       models.QuestionKind `json:"kind" validate:"required,oneof=MCQ Theoretical Practical"`
	Count      int                 `json:"count" validate:"min=1,max=100"`
}

var validate = validator.New()

func (r *GenerateRequest) Validate() error {
	r.Company = strings.TrimSpace(r.Company)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	return validate.Struct(r)
}

// Generator produces question sets from the text-generation collaborator.
// Every call is a single fresh request; nothing is cached or retried.
type Generator struct {
	llm         TextGenerator
	temperature float32
}

func NewGenerator(llm TextGenerator) *Generator {
	return &Generator{llm: llm, temperature: 0.7}
}

func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (models.QuestionSet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	prompt := BuildQuestionPrompt(req)
	log.Printf("📝 Question prompt length: %d characters", len(prompt))

	raw, err := g.llm.GenerateText(ctx, prompt, g.temperature)
	if err != nil {
		return nil, &GenerationError{Reason: "text generation failed", Cause: err}
	}

	set, err := parseQuestionSet(raw, req.Kind)
	if err != nil {
		log.Printf("❌ Could not parse question set: %v", err)
		return nil, err
	}

	if len(set) < req.Count {
		log.Printf("⚠️  Requested %d questions, model returned %d usable", req.Count, len(set))
	}
	return set, nil
}

// BuildQuestionPrompt asks for a literal list of 4-tuples so that every kind
// shares one response shape.
func BuildQuestionPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d %s interview questions for a %s role at %s. ", req.Count, req.Kind, req.JobTitle, req.Company)
	fmt.Fprintf(&b, "Difficulty: %s. ", req.Difficulty)
	if desc := req.Kind.Description(); desc != "" {
		b.WriteString(desc)
		b.WriteString(" ")
	}
	b.WriteString("For each question, also provide a model answer. ")
	b.WriteString("Return ONLY a Python list of tuples, where each tuple is (question, correct_option, options_dict, explanation).")
	if req.Kind.IsMultipleChoice() {
		b.WriteString(` options_dict maps the option letters "A", "B", "C", "D" to option text and correct_option is the letter of the correct option.`)
	} else {
		b.WriteString(" Use None for correct_option and options_dict; explanation is the model answer.")
	}
	return b.String()
}
