package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is the outcome of one turn.
type AnswerRecord struct {
	Question      string            `json:"question"`
	Answer        string            `json:"answer"`
	Score         int               `json:"score"`
	IsCorrect     *bool             `json:"is_correct,omitempty"`
	Feedback      []string          `json:"feedback"`
	ModelAnswer   string            `json:"model_answer"`
	CorrectOption string            `json:"correct_option,omitempty"`
	Options       map[string]string `json:"options,omitempty"`
}

// SessionState is one active interview attempt. It is owned by a single
// user and must not be mutated concurrently.
type SessionState struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"user_id"`
	Company    string         `json:"company"`
	JobTitle   string         `json:"job_title"`
	Difficulty Difficulty     `json:"difficulty"`
	Kind       QuestionKind   `json:"kind"`
	Questions  QuestionSet    `json:"questions"`
	Position   int            `json:"position"`
	Answers    []AnswerRecord `json:"answers"`
	StartedAt  time.Time      `json:"started_at"`
}

func (s *SessionState) IsComplete() bool {
	return s.Position >= len(s.Questions)
}

// CurrentQuestion returns the question awaiting an answer, or false once the
// session is complete.
func (s *SessionState) CurrentQuestion() (*QuestionRecord, bool) {
	if s.IsComplete() {
		return nil, false
	}
	return &s.Questions[s.Position], true
}

// InterviewSummary is the persisted record of a finished session.
type InterviewSummary struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID       uuid.UUID      `gorm:"type:uuid" json:"session_id"`
	Company         string         `gorm:"type:text" json:"company"`
	JobTitle        string         `gorm:"type:text" json:"job_title"`
	Difficulty      Difficulty     `gorm:"type:text" json:"difficulty"`
	Kind            QuestionKind   `gorm:"type:text" json:"kind"`
	StartedAt       time.Time      `gorm:"type:timestamp" json:"started_at"`
	DurationSeconds int64          `json:"duration_seconds"`
	QuestionCount   int            `json:"question_count"`
	CorrectCount    int            `json:"correct_count"`
	OverallScore    float64        `json:"overall_score"`
	Answers         []AnswerRecord `gorm:"type:jsonb;serializer:json" json:"answers"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewSummary) TableName() string {
	return "interview_summaries"
}

func (s *InterviewSummary) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}
