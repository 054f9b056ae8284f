package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

type fakeRecorder struct {
	calls []*models.InterviewSummary
	users []uuid.UUID
	err   error
}

func (f *fakeRecorder) SaveSummary(_ context.Context, userID uuid.UUID, summary *models.InterviewSummary) error {
	f.calls = append(f.calls, summary)
	f.users = append(f.users, userID)
	return f.err
}

func newTestEngine(recorder SummaryRecorder) *Engine {
	e := NewEngine(recorder)
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	e.now = func() time.Time {
		t := start.Add(time.Duration(tick) * time.Minute)
		tick++
		return t
	}
	return e
}

func mcqSet(t *testing.T) models.QuestionSet {
	t.Helper()
	set, err := parseQuestionSet(twoQuestionResponse, models.KindMultipleChoice)
	require.NoError(t, err)
	return set
}

func TestEngine_MultipleChoiceSession(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := newTestEngine(recorder)
	userID := uuid.New()

	state := engine.Start(userID, googleMCQRequest(), mcqSet(t))
	assert.Equal(t, 0, state.Position)
	assert.False(t, state.IsComplete())

	first, err := engine.SubmitAnswer(context.Background(), state, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Answer.Score)
	require.NotNil(t, first.Answer.IsCorrect)
	assert.True(t, *first.Answer.IsCorrect)
	assert.False(t, first.Complete)
	require.NotNil(t, first.Next)
	assert.Equal(t, "What is Big-O?", first.Next.Question)
	assert.Equal(t, 1, state.Position)
	assert.Empty(t, recorder.calls)

	second, err := engine.SubmitAnswer(context.Background(), state, "D")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Answer.Score)
	assert.True(t, second.Complete)
	assert.Nil(t, second.Next)
	assert.True(t, state.IsComplete())

	summary := second.Summary
	require.NotNil(t, summary)
	assert.InDelta(t, 50.0, summary.OverallScore, 1e-9)
	assert.Equal(t, 1, summary.CorrectCount)
	assert.Equal(t, 2, summary.QuestionCount)
	assert.Equal(t, "Google", summary.Company)
	assert.Equal(t, "Software Engineer", summary.JobTitle)
	assert.Equal(t, models.DifficultyEasy, summary.Difficulty)
	assert.Equal(t, models.KindMultipleChoice, summary.Kind)
	assert.Equal(t, state.StartedAt, summary.StartedAt)
	assert.Equal(t, int64(60), summary.DurationSeconds)
	assert.Len(t, summary.Answers, 2)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, userID, recorder.users[0])
	assert.Same(t, summary, recorder.calls[0])
	assert.NoError(t, second.SaveErr)
}

func TestEngine_SubmitAfterCompleteIsInvalidState(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := newTestEngine(recorder)
	state := engine.Start(uuid.New(), googleMCQRequest(), mcqSet(t)[:1])

	_, err := engine.SubmitAnswer(context.Background(), state, "A")
	require.NoError(t, err)

	_, err = engine.SubmitAnswer(context.Background(), state, "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))

	var stateErr *InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, 1, stateErr.Position)
	assert.Len(t, state.Answers, 1, "rejected call must not mutate state")
	assert.Len(t, recorder.calls, 1, "summary is saved exactly once")
}

func TestEngine_OpenEndedSession(t *testing.T) {
	engine := newTestEngine(nil)
	req := GenerateRequest{Company: "Amazon", JobTitle: "Product Manager", Difficulty: models.DifficultyMedium, Kind: models.KindTheoretical, Count: 2}
	set := models.QuestionSet{
		{Question: "Q1", Kind: models.KindTheoretical, ModelAnswer: "m1"},
		{Question: "Q2", Kind: models.KindTheoretical, ModelAnswer: "m2"},
	}
	state := engine.Start(uuid.New(), req, set)

	r1, err := engine.SubmitAnswer(context.Background(), state, "")
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Answer.Score)

	r2, err := engine.SubmitAnswer(context.Background(), state, strings.Repeat("w", 100))
	require.NoError(t, err)
	assert.Equal(t, 5, r2.Answer.Score)
	require.True(t, r2.Complete)
	assert.InDelta(t, 3.0, r2.Summary.OverallScore, 1e-9)
	assert.Equal(t, 0, r2.Summary.CorrectCount)
}

func TestEngine_RecorderFailureDoesNotBlockCompletion(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("db down")}
	engine := newTestEngine(recorder)
	state := engine.Start(uuid.New(), googleMCQRequest(), mcqSet(t)[:1])

	result, err := engine.SubmitAnswer(context.Background(), state, "LIFO structure")
	require.NoError(t, err)
	assert.True(t, result.Complete)
	assert.NotNil(t, result.Summary)
	assert.EqualError(t, result.SaveErr, "db down")
	assert.InDelta(t, 100.0, result.Summary.OverallScore, 1e-9)
}

func TestEngine_StartCopiesQuestionSet(t *testing.T) {
	set := mcqSet(t)
	state := newTestEngine(nil).Start(uuid.New(), googleMCQRequest(), set)

	set[0].Question = "mutated"
	assert.Equal(t, "What is a stack?", state.Questions[0].Question)
	assert.NotEqual(t, uuid.Nil, state.ID)
}
