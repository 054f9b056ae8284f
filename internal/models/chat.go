package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one answered HR question with the feedback it received.
type ChatTurn struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Feedback   string    `json:"feedback"`
	AnsweredAt time.Time `json:"answered_at"`
}

// ChatState is a one-on-one HR conversation. While AwaitingAnswer is set,
// CurrentQuestion has been asked but not answered.
type ChatState struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	CurrentQuestion string     `json:"current_question"`
	AwaitingAnswer  bool       `json:"awaiting_answer"`
	History         []ChatTurn `json:"history"`
	StartedAt       time.Time  `json:"started_at"`
}

// LastTurn returns the most recent answered turn, if any.
func (s *ChatState) LastTurn() (ChatTurn, bool) {
	if len(s.History) == 0 {
		return ChatTurn{}, false
	}
	return s.History[len(s.History)-1], true
}
