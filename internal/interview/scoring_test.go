package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

var stackQuestion = models.QuestionRecord{
	Question:      "What is a stack?",
	Kind:          models.KindMultipleChoice,
	Options:       map[string]string{"A": "LIFO structure", "B": "Queue", "C": "Tree", "D": "Graph"},
	CorrectOption: "A",
	ModelAnswer:   "A stack is LIFO",
}

func TestScoreMultipleChoice(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"label", "A", true},
		{"lowercase label", "a", true},
		{"label with spaces", "  a \n", true},
		{"option text", "LIFO structure", true},
		{"option text any case", "lifo STRUCTURE", true},
		{"wrong label", "B", false},
		{"wrong text", "Queue", false},
		{"empty", "", false},
		{"unknown", "Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := scoreMultipleChoice(stackQuestion, tt.answer)
			require.NotNil(t, rec.IsCorrect)
			assert.Equal(t, tt.correct, *rec.IsCorrect)
			assert.Equal(t, tt.answer, rec.Answer)
			assert.Equal(t, "A stack is LIFO", rec.ModelAnswer)
			assert.Equal(t, "A", rec.CorrectOption)
			if tt.correct {
				assert.Equal(t, 1, rec.Score)
				assert.Equal(t, []string{FeedbackCorrect}, rec.Feedback)
			} else {
				assert.Equal(t, 0, rec.Score)
				assert.Equal(t, []string{FeedbackIncorrect}, rec.Feedback)
			}
		})
	}
}

func TestOpenEndedScore_BoundedAndMonotonic(t *testing.T) {
	prev := 0
	for n := 0; n <= 300; n++ {
		score := openEndedScore(strings.Repeat("x", n))
		assert.GreaterOrEqual(t, score, 1)
		assert.LessOrEqual(t, score, 10)
		assert.GreaterOrEqual(t, score, prev, "length %d", n)
		prev = score
	}

	assert.Equal(t, 1, openEndedScore(""))
	assert.Equal(t, 1, openEndedScore(strings.Repeat("x", 39)))
	assert.Equal(t, 2, openEndedScore(strings.Repeat("x", 40)))
	assert.Equal(t, 10, openEndedScore(strings.Repeat("x", 5000)))
	assert.Equal(t, 1, openEndedScore("   "+strings.Repeat("x", 39)+"   "), "whitespace is trimmed")
}

func TestScoreOpenEnded_Feedback(t *testing.T) {
	model := strings.Repeat("x", 200)
	q := models.QuestionRecord{Question: "Explain", Kind: models.KindTheoretical, ModelAnswer: model}

	tests := []struct {
		name      string
		question  models.QuestionRecord
		answer    string
		wantScore int
		want      []string
	}{
		{
			name:      "fifteen characters",
			question:  q,
			answer:    "stack is a LIFO",
			wantScore: 1,
			want:      []string{FeedbackTooShort, FeedbackMissesKey},
		},
		{
			name:      "short but contained in model answer",
			question:  q,
			answer:    strings.Repeat("x", 10),
			wantScore: 1,
			want:      []string{FeedbackTooShort},
		},
		{
			name:      "long and off topic",
			question:  q,
			answer:    strings.Repeat("y", 120),
			wantScore: 6,
			want:      []string{FeedbackMissesKey},
		},
		{
			name:      "excellent",
			question:  q,
			answer:    strings.Repeat("X", 160),
			wantScore: 8,
			want:      []string{FeedbackExcellent},
		},
		{
			name:      "good effort",
			question:  q,
			answer:    strings.Repeat("x", 100),
			wantScore: 5,
			want:      []string{FeedbackGoodEffort},
		},
		{
			name:      "needs structure",
			question:  q,
			answer:    strings.Repeat("x", 40),
			wantScore: 2,
			want:      []string{FeedbackStructuring},
		},
		{
			name:      "no model answer skips key point check",
			question:  models.QuestionRecord{Question: "Explain", Kind: models.KindPractical},
			answer:    strings.Repeat("z", 200),
			wantScore: 10,
			want:      []string{FeedbackExcellent},
		},
		{
			name:      "empty answer",
			question:  q,
			answer:    "",
			wantScore: 1,
			want:      []string{FeedbackTooShort},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := scoreOpenEnded(tt.question, tt.answer)
			assert.Equal(t, tt.wantScore, rec.Score)
			assert.Equal(t, tt.want, rec.Feedback)
			assert.Nil(t, rec.IsCorrect)
			assert.Equal(t, tt.question.ModelAnswer, rec.ModelAnswer)
		})
	}
}

func TestAggregateScore(t *testing.T) {
	yes, no := true, false

	mcq := []models.AnswerRecord{{IsCorrect: &yes}, {IsCorrect: &yes}, {IsCorrect: &yes}, {IsCorrect: &no}}
	assert.InDelta(t, 75.0, AggregateScore(models.KindMultipleChoice, mcq), 1e-9)

	open := []models.AnswerRecord{{Score: 2}, {Score: 4}, {Score: 9}}
	assert.InDelta(t, 5.0, AggregateScore(models.KindTheoretical, open), 1e-9)

	assert.Equal(t, 0.0, AggregateScore(models.KindMultipleChoice, nil))
	assert.Equal(t, 0.0, AggregateScore(models.KindPractical, nil))
}

func TestSpeechText(t *testing.T) {
	assert.Equal(t, "Your score is 1 out of 10. Correct answer!",
		SpeechText(models.AnswerRecord{Score: 1, Feedback: []string{FeedbackCorrect}}))
	assert.Equal(t, "Your score is 7 out of 10. Good job!", SpeechText(models.AnswerRecord{Score: 7}))
}
