package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/models"
)

// ErrTextGeneration wraps failures of the language model behind the tutor
// and the communication chat.
var ErrTextGeneration = errors.New("text generation failed")

const (
	maxExplanationChars     = 900
	maxExplanationSentences = 3
)

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// TutorService answers free-form technical questions.
type TutorService interface {
	Explain(ctx context.Context, question string) (*models.ExplainResponse, error)
}

type tutorService struct {
	llm         interview.TextGenerator
	temperature float32
}

func NewTutorService(llm interview.TextGenerator) TutorService {
	return &tutorService{llm: llm, temperature: 0.7}
}

// Explain implements TutorService. The explanation is shortened so that it
// can be read aloud.
func (t *tutorService) Explain(ctx context.Context, question string) (*models.ExplainResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}

	prompt := fmt.Sprintf("You are an expert technical teacher. Explain the following question in detail, with examples if possible. Question: %s", question)
	text, err := t.llm.GenerateText(ctx, prompt, t.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTextGeneration, err)
	}

	explanation := ShortenExplanation(text)
	log.Printf("👨‍🏫 Explained question (%d characters)\n", utf8.RuneCountInString(explanation))
	return &models.ExplainResponse{
		Question:    question,
		Explanation: explanation,
		SpeechText:  explanation,
	}, nil
}

// ShortenExplanation keeps whole leading sentences, stopping once three
// periods have been kept or the next sentence would pass 900 characters. Text
// whose first sentence is already too long is returned whole.
func ShortenExplanation(text string) string {
	text = strings.TrimSpace(text)

	var b strings.Builder
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(b.String())+utf8.RuneCountInString(sentence) > maxExplanationChars {
			break
		}
		b.WriteString(sentence)
		b.WriteString(" ")
		if strings.Count(b.String(), ".") >= maxExplanationSentences {
			break
		}
	}

	if short := strings.TrimSpace(b.String()); short != "" {
		return short
	}
	return text
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
