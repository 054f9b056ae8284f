package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxResumeChars bounds how many characters of resume text are sent to the model.
const MaxResumeChars = 4000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt creates the prompt for resume analysis against a job title.
func (pb *PromptBuilder) BuildATSPrompt(resumeText, jobTitle, referenceContext string) string {
	if utf8.RuneCountInString(resumeText) > MaxResumeChars {
		resumeText = string([]rune(resumeText)[:MaxResumeChars])
	}

	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) and resume reviewer. Analyze the following resume text for the job title: %s.

REFERENCE JOB REQUIREMENTS:
%s

1. Give an ATS score (0-100) based on keyword matching, formatting, and relevance for the job title.
2. List important keywords or terms that are missing for this job title.
3. Give 3-5 actionable suggestions to improve the resume for ATS systems.
4. Provide a short summary of strengths and weaknesses.

Return your answer in this JSON format:
{
  "ats_score": <score>,
  "missing_terms": ["term1", "term2", ...],
  "suggestions": ["suggestion1", "suggestion2", ...],
  "summary": "<summary>"
}

Resume Text:
%s`, jobTitle, referenceContext, resumeText)
}

// BuildRetrievalQuery creates the query used to find reference material for
// a job title.
func (pb *PromptBuilder) BuildRetrievalQuery(jobTitle string) string {
	return fmt.Sprintf("Job requirements, responsibilities and key skills for %s", jobTitle)
}

// FormatRAGContext renders search hits for inclusion in a prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No reference material available."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Reference %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
