package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionKind(t *testing.T) {
	for in, want := range map[string]QuestionKind{
		"MCQ":              KindMultipleChoice,
		" multiple-choice": KindMultipleChoice,
		"theory":           KindTheoretical,
		"Theoretical":      KindTheoretical,
		"PRACTICAL":        KindPractical,
	} {
		got, err := ParseQuestionKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseQuestionKind("essay")
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	got, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, got)

	_, err = ParseDifficulty("extreme")
	assert.Error(t, err)
}

func TestNewQuestionView(t *testing.T) {
	state := &SessionState{
		Questions: QuestionSet{
			{Question: "Pick one", Kind: KindMultipleChoice, Options: map[string]string{"B": "two", "A": "one"}, CorrectOption: "A"},
			{Question: "Explain", Kind: KindTheoretical, ModelAnswer: "because"},
		},
	}

	view := NewQuestionView(state)
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, []string{"A", "B"}, view.Labels)
	assert.Equal(t, "Pick one", view.SpeechText)

	state.Position = 1
	view = NewQuestionView(state)
	require.NotNil(t, view)
	assert.Nil(t, view.Options)
	assert.Nil(t, view.Labels)

	state.Position = 2
	assert.True(t, state.IsComplete())
	assert.Nil(t, NewQuestionView(state))
}

func TestResumeAnalysisSpeechText(t *testing.T) {
	score, summary := 70, "Decent."
	a := &ResumeAnalysis{ATSScore: &score, Suggestions: []string{"Add metrics.", "Use keywords."}, Summary: &summary}
	assert.Equal(t, "ATS Score: 70/100. Add metrics. Use keywords. Decent.", a.SpeechText())

	assert.Equal(t, "ATS Score: N/A/100.", (&ResumeAnalysis{}).SpeechText())
}
