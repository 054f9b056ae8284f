package models

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type StartInterviewRequest struct {
	Company    string `json:"company" validate:"required"`
	JobTitle   string `json:"job_title" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Kind       string `json:"kind" validate:"required"`
	Count      int    `json:"count" validate:"required,min=1"`
}

// QuestionView is what a client sees of a question: never the answer.
type QuestionView struct {
	Index      int               `json:"index"`
	Total      int               `json:"total"`
	Question   string            `json:"question"`
	Kind       QuestionKind      `json:"kind"`
	Options    map[string]string `json:"options,omitempty"`
	Labels     []string          `json:"option_labels,omitempty"`
	SpeechText string            `json:"speech_text"`
}

func NewQuestionView(state *SessionState) *QuestionView {
	q, ok := state.CurrentQuestion()
	if !ok {
		return nil
	}
	view := &QuestionView{
		Index:      state.Position,
		Total:      len(state.Questions),
		Question:   q.Question,
		Kind:       q.Kind,
		SpeechText: q.Question,
	}
	if q.Kind.IsMultipleChoice() {
		view.Options = q.Options
		view.Labels = q.OptionLabels()
	}
	return view
}

type SessionResponse struct {
	SessionID string        `json:"session_id"`
	Company   string        `json:"company"`
	JobTitle  string        `json:"job_title"`
	Kind      QuestionKind  `json:"kind"`
	Question  *QuestionView `json:"question,omitempty"`
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"max=20000"`
}

type AnswerResponse struct {
	Result     AnswerRecord      `json:"result"`
	SpeechText string            `json:"speech_text"`
	Complete   bool              `json:"complete"`
	Next       *QuestionView     `json:"next,omitempty"`
	Summary    *InterviewSummary `json:"summary,omitempty"`
	Warning    string            `json:"warning,omitempty"`
}

type SpeechRequest struct {
	Text    string `json:"text" validate:"required,max=5000"`
	VoiceID string `json:"voice_id"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
}

type AnalyzeRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
	JobTitle string `json:"job_title" validate:"required"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AnalysisResultResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	JobTitle     string        `json:"job_title"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type AnalysisData struct {
	ATSScore     int      `json:"ats_score"`
	MissingTerms []string `json:"missing_terms"`
	Suggestions  []string `json:"suggestions"`
	Summary      string   `json:"summary"`
}

type ExplainRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type ExplainResponse struct {
	Question    string `json:"question"`
	Explanation string `json:"explanation"`
	SpeechText  string `json:"speech_text"`
}

type ChatAnswerRequest struct {
	Answer string `json:"answer" validate:"required,max=20000"`
}

// ChatResponse shows the chat after a start, answer or next step. Feedback is
// set right after an answer; SpeechText is what the client may read aloud.
type ChatResponse struct {
	ChatID         string     `json:"chat_id"`
	Question       string     `json:"question"`
	AwaitingAnswer bool       `json:"awaiting_answer"`
	Feedback       string     `json:"feedback,omitempty"`
	SpeechText     string     `json:"speech_text"`
	History        []ChatTurn `json:"history"`
}
