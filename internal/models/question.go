package models

import (
	"fmt"
	"sort"
	"strings"
)

type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "MCQ"
	KindTheoretical    QuestionKind = "Theoretical"
	KindPractical      QuestionKind = "Practical"
)

var kindDescriptions = map[QuestionKind]string{
	KindMultipleChoice: "Multiple-choice questions with 4 options and the correct answer.",
	KindPractical:      "Hands-on or coding/practical scenario questions.",
	KindTheoretical:    "Conceptual or theory-based questions.",
}

// ParseQuestionKind accepts the canonical names plus a few common spellings.
func ParseQuestionKind(s string) (QuestionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "multiplechoice", "multiple_choice", "multiple-choice":
		return KindMultipleChoice, nil
	case "theoretical", "theory":
		return KindTheoretical, nil
	case "practical":
		return KindPractical, nil
	}
	return "", fmt.Errorf("unknown question kind: %q", s)
}

func (k QuestionKind) Description() string {
	return kindDescriptions[k]
}

func (k QuestionKind) IsMultipleChoice() bool {
	return k == KindMultipleChoice
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// QuestionRecord is one generated question. Options and CorrectOption are
// only set for multiple-choice questions, and CorrectOption is always a key
// of Options.
type QuestionRecord struct {
	Question      string            `json:"question"`
	Kind          QuestionKind      `json:"kind"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectOption string            `json:"correct_option,omitempty"`
	ModelAnswer   string            `json:"model_answer"`
}

// OptionLabels returns the option keys in display order.
func (q QuestionRecord) OptionLabels() []string {
	labels := make([]string, 0, len(q.Options))
	for label := range q.Options {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// QuestionSet is produced once per session and never mutated afterwards.
type QuestionSet []QuestionRecord
