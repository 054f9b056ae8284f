package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

var ErrInvalidRequest = errors.New("invalid request")

// QuestionGenerator is satisfied by *interview.Generator.
type QuestionGenerator interface {
	Generate(ctx context.Context, req interview.GenerateRequest) (models.QuestionSet, error)
}

type InterviewService interface {
	Start(ctx context.Context, userID uuid.UUID, req *models.StartInterviewRequest) (*models.SessionResponse, error)
	Current(ctx context.Context, userID uuid.UUID) (*models.SessionResponse, error)
	Answer(ctx context.Context, userID uuid.UUID, answer string) (*models.AnswerResponse, error)
	Abandon(ctx context.Context, userID uuid.UUID) error
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.InterviewSummary, error)
}

type interviewService struct {
	generator    QuestionGenerator
	engine       *interview.Engine
	sessions     SessionStore
	history      repositories.InterviewRepository
	maxQuestions int
	locks        *userLocks
}

// NewInterviewService wires the session engine to its collaborators. The
// history repository doubles as the engine's summary recorder.
func NewInterviewService(
	generator QuestionGenerator,
	sessions SessionStore,
	history repositories.InterviewRepository,
	maxQuestions int,
) InterviewService {
	if maxQuestions <= 0 || maxQuestions > interview.MaxQuestionCount {
		maxQuestions = interview.MaxQuestionCount
	}

	var recorder interview.SummaryRecorder
	if history != nil {
		recorder = history
	}

	return &interviewService{
		generator:    generator,
		engine:       interview.NewEngine(recorder),
		sessions:     sessions,
		history:      history,
		maxQuestions: maxQuestions,
		locks:        newUserLocks(),
	}
}

func (s *interviewService) toGenerateRequest(req *models.StartInterviewRequest) (interview.GenerateRequest, error) {
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		return interview.GenerateRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	kind, err := models.ParseQuestionKind(req.Kind)
	if err != nil {
		return interview.GenerateRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Count < 1 || req.Count > s.maxQuestions {
		return interview.GenerateRequest{}, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidRequest, s.maxQuestions)
	}

	return interview.GenerateRequest{
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		Difficulty: difficulty,
		Kind:       kind,
		Count:      req.Count,
	}, nil
}

// Start implements InterviewService. A new session replaces any active one.
func (s *interviewService) Start(ctx context.Context, userID uuid.UUID, req *models.StartInterviewRequest) (*models.SessionResponse, error) {
	genReq, err := s.toGenerateRequest(req)
	if err != nil {
		return nil, err
	}

	log.Printf("🎯 Generating %d %s questions for %s at %s\n", genReq.Count, genReq.Kind, genReq.JobTitle, genReq.Company)
	set, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, verrs)
		}
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	state := s.engine.Start(userID, genReq, set)
	if err := s.sessions.Put(ctx, state); err != nil {
		return nil, err
	}

	log.Printf("✅ Interview session %s started with %d questions\n", state.ID, len(state.Questions))
	return sessionResponse(state), nil
}

// Current implements InterviewService. A completed session is not current.
func (s *interviewService) Current(ctx context.Context, userID uuid.UUID) (*models.SessionResponse, error) {
	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.IsComplete() {
		return nil, ErrSessionNotFound
	}
	return sessionResponse(state), nil
}

// Answer implements InterviewService. On completion the session is removed
// and the summary returned; a failed save becomes a warning.
func (s *interviewService) Answer(ctx context.Context, userID uuid.UUID, answer string) (*models.AnswerResponse, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	turn, err := s.engine.SubmitAnswer(ctx, state, answer)
	if err != nil {
		return nil, err
	}

	resp := &models.AnswerResponse{
		Result:     turn.Answer,
		SpeechText: interview.SpeechText(turn.Answer),
		Complete:   turn.Complete,
	}

	if !turn.Complete {
		if err := s.sessions.Put(ctx, state); err != nil {
			return nil, err
		}
		resp.Next = models.NewQuestionView(state)
		return resp, nil
	}

	resp.Summary = turn.Summary
	if turn.SaveErr != nil {
		resp.Warning = "interview finished but the summary could not be saved"
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		log.Printf("⚠️  Failed to clear finished session %s: %v\n", state.ID, err)
		// A stored completed state rejects a resubmitted last answer, so the
		// summary is still recorded once.
		if err := s.sessions.Put(ctx, state); err != nil {
			log.Printf("⚠️  Failed to store finished session %s: %v\n", state.ID, err)
		}
	}

	log.Printf("🏁 Interview session %s complete, score %.1f\n", state.ID, turn.Summary.OverallScore)
	return resp, nil
}

// Abandon implements InterviewService.
func (s *interviewService) Abandon(ctx context.Context, userID uuid.UUID) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if _, err := s.sessions.Get(ctx, userID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, userID)
}

// History implements InterviewService.
func (s *interviewService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.InterviewSummary, error) {
	if s.history == nil {
		return []models.InterviewSummary{}, nil
	}
	return s.history.LoadSummaries(ctx, userID, limit)
}

func sessionResponse(state *models.SessionState) *models.SessionResponse {
	return &models.SessionResponse{
		SessionID: state.ID.String(),
		Company:   state.Company,
		JobTitle:  state.JobTitle,
		Kind:      state.Kind,
		Question:  models.NewQuestionView(state),
	}
}
