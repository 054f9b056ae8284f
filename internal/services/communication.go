package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/models"
)

// ErrChatOutOfTurn is returned for an answer while no question is open, or
// for a new question while one is still unanswered.
var ErrChatOutOfTurn = errors.New("communication chat is not expecting this step")

const (
	hrQuestionPrompt = "You are an HR interviewer for a top company. Ask the user a real-world behavioral or situational interview question. " +
		"Do not answer, only ask a question."
	hrFeedbackPrompt = "You are an expert HR interviewer. The user answered the following HR interview question.\n" +
		"Question: %s\n" +
		"User's Answer: %s\n" +
		"Give detailed, constructive feedback and advice (at least 50 words) on how the user could improve their answer."
)

// CommunicationService runs a one-on-one HR chat: ask, answer, feedback,
// next question.
type CommunicationService interface {
	Start(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error)
	Current(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error)
	Answer(ctx context.Context, userID uuid.UUID, answer string) (*models.ChatResponse, error)
	Next(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error)
	Stop(ctx context.Context, userID uuid.UUID) error
}

type communicationService struct {
	llm         interview.TextGenerator
	chats       ChatStore
	locks       *userLocks
	temperature float32
	now         func() time.Time
}

func NewCommunicationService(llm interview.TextGenerator, chats ChatStore) CommunicationService {
	return &communicationService{
		llm:         llm,
		chats:       chats,
		locks:       newUserLocks(),
		temperature: 0.9,
		now:         time.Now,
	}
}

func (s *communicationService) askQuestion(ctx context.Context) (string, error) {
	question, err := s.llm.GenerateText(ctx, hrQuestionPrompt, s.temperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTextGeneration, err)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", ErrTextGeneration)
	}
	return question, nil
}

// Start implements CommunicationService. Any previous chat is discarded.
func (s *communicationService) Start(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	question, err := s.askQuestion(ctx)
	if err != nil {
		return nil, err
	}

	state := &models.ChatState{
		ID:              uuid.New(),
		UserID:          userID,
		CurrentQuestion: question,
		AwaitingAnswer:  true,
		History:         []models.ChatTurn{},
		StartedAt:       s.now(),
	}
	if err := s.chats.Put(ctx, state); err != nil {
		return nil, err
	}

	log.Printf("🗣️  Communication chat %s started\n", state.ID)
	return chatResponse(state, ""), nil
}

// Current implements CommunicationService.
func (s *communicationService) Current(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error) {
	state, err := s.chats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	feedback := ""
	if last, ok := state.LastTurn(); ok && !state.AwaitingAnswer {
		feedback = last.Feedback
	}
	return chatResponse(state, feedback), nil
}

// Answer implements CommunicationService. A failed feedback request leaves
// the question open so the answer can be sent again.
func (s *communicationService) Answer(ctx context.Context, userID uuid.UUID, answer string) (*models.ChatResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: answer is required", ErrInvalidRequest)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	state, err := s.chats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.AwaitingAnswer {
		return nil, ErrChatOutOfTurn
	}

	feedback, err := s.llm.GenerateText(ctx, fmt.Sprintf(hrFeedbackPrompt, state.CurrentQuestion, answer), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTextGeneration, err)
	}
	feedback = strings.TrimSpace(feedback)

	state.History = append(state.History, models.ChatTurn{
		Question:   state.CurrentQuestion,
		Answer:     answer,
		Feedback:   feedback,
		AnsweredAt: s.now(),
	})
	state.AwaitingAnswer = false
	if err := s.chats.Put(ctx, state); err != nil {
		return nil, err
	}
	return chatResponse(state, feedback), nil
}

// Next implements CommunicationService.
func (s *communicationService) Next(ctx context.Context, userID uuid.UUID) (*models.ChatResponse, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	state, err := s.chats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.AwaitingAnswer {
		return nil, ErrChatOutOfTurn
	}

	question, err := s.askQuestion(ctx)
	if err != nil {
		return nil, err
	}
	state.CurrentQuestion = question
	state.AwaitingAnswer = true
	if err := s.chats.Put(ctx, state); err != nil {
		return nil, err
	}
	return chatResponse(state, ""), nil
}

// Stop implements CommunicationService.
func (s *communicationService) Stop(ctx context.Context, userID uuid.UUID) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if _, err := s.chats.Get(ctx, userID); err != nil {
		return err
	}
	return s.chats.Delete(ctx, userID)
}

func chatResponse(state *models.ChatState, feedback string) *models.ChatResponse {
	speech := state.CurrentQuestion
	if feedback != "" {
		speech = feedback
	}
	return &models.ChatResponse{
		ChatID:         state.ID.String(),
		Question:       state.CurrentQuestion,
		AwaitingAnswer: state.AwaitingAnswer,
		Feedback:       feedback,
		SpeechText:     speech,
		History:        state.History,
	}
}
