package interview

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
)

// SummaryRecorder is the persistence collaborator, called once per
// completed session.
type SummaryRecorder interface {
	SaveSummary(ctx context.Context, userID uuid.UUID, summary *models.InterviewSummary) error
}

// TurnResult is what one submitted answer produces.
type TurnResult struct {
	Answer   models.AnswerRecord
	Complete bool
	Next     *models.QuestionRecord
	Summary  *models.InterviewSummary
	// SaveErr is set when the summary could not be persisted. The session is
	// complete regardless.
	SaveErr error
}

// Engine drives a SessionState from its first question to completion. It
// holds no per-session data; the caller owns the state and must serialize
// calls for the same session.
type Engine struct {
	recorder SummaryRecorder
	now      func() time.Time
}

func NewEngine(recorder SummaryRecorder) *Engine {
	return &Engine{recorder: recorder, now: time.Now}
}

// Start creates the state for a freshly generated question set.
func (e *Engine) Start(userID uuid.UUID, req GenerateRequest, set models.QuestionSet) *models.SessionState {
	questions := make(models.QuestionSet, len(set))
	copy(questions, set)
	return &models.SessionState{
		ID:         uuid.New(),
		UserID:     userID,
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		Difficulty: req.Difficulty,
		Kind:       req.Kind,
		Questions:  questions,
		Answers:    make([]models.AnswerRecord, 0, len(questions)),
		StartedAt:  e.now(),
	}
}

// SubmitAnswer scores rawAnswer against the current question and advances
// the state. When the last question is answered the summary is built and
// handed to the recorder.
func (e *Engine) SubmitAnswer(ctx context.Context, state *models.SessionState, rawAnswer string) (*TurnResult, error) {
	q, ok := state.CurrentQuestion()
	if !ok {
		return nil, &InvalidStateError{Position: state.Position, Total: len(state.Questions)}
	}

	var rec models.AnswerRecord
	if q.Kind.IsMultipleChoice() {
		rec = scoreMultipleChoice(*q, rawAnswer)
	} else {
		rec = scoreOpenEnded(*q, rawAnswer)
	}
	state.Answers = append(state.Answers, rec)
	state.Position++

	result := &TurnResult{Answer: rec}
	if next, ok := state.CurrentQuestion(); ok {
		result.Next = next
		return result, nil
	}

	result.Complete = true
	result.Summary = e.Summarize(state)
	if e.recorder != nil {
		if err := e.recorder.SaveSummary(ctx, state.UserID, result.Summary); err != nil {
			log.Printf("⚠️  Failed to save interview summary for session %s: %v", state.ID, err)
			result.SaveErr = err
		}
	}
	return result, nil
}

// Summarize builds the summary record for a session. It is meaningful once
// the session is complete.
func (e *Engine) Summarize(state *models.SessionState) *models.InterviewSummary {
	answers := make([]models.AnswerRecord, len(state.Answers))
	copy(answers, state.Answers)
	return &models.InterviewSummary{
		ID:              uuid.New(),
		UserID:          state.UserID,
		SessionID:       state.ID,
		Company:         state.Company,
		JobTitle:        state.JobTitle,
		Difficulty:      state.Difficulty,
		Kind:            state.Kind,
		StartedAt:       state.StartedAt,
		DurationSeconds: int64(e.now().Sub(state.StartedAt) / time.Second),
		QuestionCount:   len(state.Questions),
		CorrectCount:    countCorrect(answers),
		OverallScore:    AggregateScore(state.Kind, answers),
		Answers:         answers,
	}
}
