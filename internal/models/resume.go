package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	ContentType      string    `gorm:"type:text" json:"content_type"`
	FilePath         string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

type ResumeAnalysis struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeID     uuid.UUID      `gorm:"type:uuid;not null" json:"resume_id"`
	JobTitle     string         `gorm:"type:text" json:"job_title"`
	Status       AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	ATSScore     *int           `json:"ats_score,omitempty"`
	MissingTerms []string       `gorm:"type:jsonb;serializer:json" json:"missing_terms,omitempty"`
	Suggestions  []string       `gorm:"type:jsonb;serializer:json" json:"suggestions,omitempty"`
	Summary      *string        `gorm:"type:text" json:"summary,omitempty"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
}

func (ResumeAnalysis) TableName() string {
	return "resume_analyses"
}

// SpeechText renders a completed analysis as a short narration.
func (a *ResumeAnalysis) SpeechText() string {
	var b strings.Builder
	if a.ATSScore != nil {
		fmt.Fprintf(&b, "ATS Score: %d/100. ", *a.ATSScore)
	} else {
		b.WriteString("ATS Score: N/A/100. ")
	}
	if len(a.Suggestions) > 0 {
		b.WriteString(strings.Join(a.Suggestions, " "))
		b.WriteString(" ")
	}
	if a.Summary != nil {
		b.WriteString(*a.Summary)
	}
	return strings.TrimSpace(b.String())
}
