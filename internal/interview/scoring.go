package interview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/interview-coach/internal/models"
)

const (
	FeedbackCorrect   = "Correct answer!"
	FeedbackIncorrect = "Incorrect. Review the correct answer below."

	FeedbackTooShort    = "Your answer is too short. Try to elaborate more and provide specific details."
	FeedbackMissesKey   = "Your answer misses some key points. Review the model answer for more depth and accuracy."
	FeedbackExcellent   = "Excellent answer! You covered all the important aspects."
	FeedbackGoodEffort  = "Good effort! Consider adding more examples or details next time."
	FeedbackStructuring = "Work on structuring your answer and addressing the main question points."

	charsPerPoint  = 20
	minOpenScore   = 1
	maxOpenScore   = 10
	shortAnswerLen = 30
)

// scoreMultipleChoice accepts either the correct option label or the text of
// the correct option, case-insensitively.
func scoreMultipleChoice(q models.QuestionRecord, raw string) models.AnswerRecord {
	correct := isCorrectOption(q, raw)
	rec := models.AnswerRecord{
		Question:      q.Question,
		Answer:        raw,
		IsCorrect:     &correct,
		ModelAnswer:   q.ModelAnswer,
		CorrectOption: q.CorrectOption,
		Options:       q.Options,
	}
	if correct {
		rec.Score = 1
		rec.Feedback = []string{FeedbackCorrect}
	} else {
		rec.Feedback = []string{FeedbackIncorrect}
	}
	return rec
}

func isCorrectOption(q models.QuestionRecord, raw string) bool {
	answer := strings.ToLower(strings.TrimSpace(raw))
	label := strings.ToLower(strings.TrimSpace(q.CorrectOption))
	if answer == "" || label == "" {
		return false
	}
	if answer == label {
		return true
	}
	for k, v := range q.Options {
		if strings.ToLower(strings.TrimSpace(k)) == label && answer == strings.ToLower(strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

// openEndedScore awards one point per 20 characters of trimmed answer,
// clamped to [1, 10]. It measures length, not correctness.
func openEndedScore(raw string) int {
	score := utf8.RuneCountInString(strings.TrimSpace(raw)) / charsPerPoint
	return min(maxOpenScore, max(minOpenScore, score))
}

func scoreOpenEnded(q models.QuestionRecord, raw string) models.AnswerRecord {
	trimmed := strings.TrimSpace(raw)
	score := openEndedScore(raw)

	var feedback []string
	if utf8.RuneCountInString(trimmed) < shortAnswerLen {
		feedback = append(feedback, FeedbackTooShort)
	}
	if q.ModelAnswer != "" && !strings.Contains(strings.ToLower(q.ModelAnswer), strings.ToLower(trimmed)) {
		feedback = append(feedback, FeedbackMissesKey)
	}
	if len(feedback) == 0 {
		switch {
		case score >= 8:
			feedback = append(feedback, FeedbackExcellent)
		case score >= 5:
			feedback = append(feedback, FeedbackGoodEffort)
		default:
			feedback = append(feedback, FeedbackStructuring)
		}
	}

	return models.AnswerRecord{
		Question:    q.Question,
		Answer:      raw,
		Score:       score,
		Feedback:    feedback,
		ModelAnswer: q.ModelAnswer,
	}
}

// AggregateScore is the percentage of correct answers for multiple-choice
// sessions and the mean score otherwise. No answers yields 0.
func AggregateScore(kind models.QuestionKind, answers []models.AnswerRecord) float64 {
	if len(answers) == 0 {
		return 0
	}
	if kind.IsMultipleChoice() {
		return 100 * float64(countCorrect(answers)) / float64(len(answers))
	}
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return float64(total) / float64(len(answers))
}

func countCorrect(answers []models.AnswerRecord) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect != nil && *a.IsCorrect {
			n++
		}
	}
	return n
}

// SpeechText is the narration for one turn's feedback.
func SpeechText(rec models.AnswerRecord) string {
	text := fmt.Sprintf("Your score is %d out of 10. ", rec.Score)
	if len(rec.Feedback) == 0 {
		return text + "Good job!"
	}
	return text + strings.Join(rec.Feedback, " ")
}
