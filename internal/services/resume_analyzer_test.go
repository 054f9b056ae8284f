package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestParseATSResult(t *testing.T) {
	response := "Here you go:\n```json\n{\n  \"ats_score\": 72,\n  \"missing_terms\": [\"Kubernetes\", \"CI/CD\"],\n  \"suggestions\": [\"Quantify impact\"],\n  \"summary\": \"Solid backend profile.\"\n}\n```"

	result, err := ParseATSResult(response)
	require.NoError(t, err)
	assert.Equal(t, 72, result.ATSScore)
	assert.Equal(t, []string{"Kubernetes", "CI/CD"}, result.MissingTerms)
	assert.Equal(t, []string{"Quantify impact"}, result.Suggestions)
	assert.Equal(t, "Solid backend profile.", result.Summary)
}

func TestParseATSResult_ClampsAndDefaults(t *testing.T) {
	result, err := ParseATSResult(`{"ats_score": 140, "summary": "ok"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, result.ATSScore)
	assert.NotNil(t, result.MissingTerms)
	assert.NotNil(t, result.Suggestions)

	result, err = ParseATSResult(`{"ats_score": -3}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ATSScore)
}

func TestParseATSResult_Invalid(t *testing.T) {
	_, err := ParseATSResult("   ")
	assert.Error(t, err)

	_, err = ParseATSResult("I cannot score this resume.")
	assert.Error(t, err)
}

func newAnalysisFixture() (*models.Resume, *models.ResumeAnalysis, *fakeAnalysisRepo, *fakeResumeRepo) {
	resume := &models.Resume{ID: uuid.New(), UserID: uuid.New(), FilePath: "/uploads/resume.txt"}
	analysis := &models.ResumeAnalysis{
		ID:       uuid.New(),
		UserID:   resume.UserID,
		ResumeID: resume.ID,
		JobTitle: "Data Scientist",
		Status:   models.StatusQueued,
	}
	return resume, analysis,
		newFakeAnalysisRepo(analysis),
		&fakeResumeRepo{resumes: map[uuid.UUID]*models.Resume{resume.ID: resume}}
}

func TestAnalyzeResume_Success(t *testing.T) {
	_, analysis, analyses, resumes := newAnalysisFixture()
	gemini := &fakeGemini{text: `{"ats_score": 64, "missing_terms": ["SQL"], "suggestions": ["Add metrics"], "summary": "Good start."}`}
	refs := &fakeReferences{results: []SearchResult{{Text: "Must know SQL and Python", Score: 0.9}}}

	analyzer := NewResumeAnalyzer(analyses, resumes, gemini, refs, &fakeExtractor{text: "Python developer"}, 1)
	require.NoError(t, analyzer.AnalyzeResume(context.Background(), analysis.ID))

	assert.Equal(t, []models.AnalysisStatus{models.StatusProcessing, models.StatusCompleted}, analyses.statuses)
	require.NotNil(t, analyses.result)
	assert.Equal(t, 64, analyses.result.ATSScore)
	assert.Equal(t, []string{"SQL"}, analyses.result.MissingTerms)
	assert.Equal(t, "Data Scientist", refs.jobTitle)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "job title: Data Scientist")
	assert.Contains(t, gemini.prompts[0], "Must know SQL and Python")
	assert.Contains(t, gemini.prompts[0], "Python developer")
}

func TestAnalyzeResume_TruncatesResumeText(t *testing.T) {
	_, analysis, analyses, resumes := newAnalysisFixture()
	gemini := &fakeGemini{text: `{"ats_score": 50}`}
	long := strings.Repeat("a", MaxResumeChars) + "TAIL"

	analyzer := NewResumeAnalyzer(analyses, resumes, gemini, nil, &fakeExtractor{text: long}, 1)
	require.NoError(t, analyzer.AnalyzeResume(context.Background(), analysis.ID))

	require.Len(t, gemini.prompts, 1)
	assert.NotContains(t, gemini.prompts[0], "TAIL")
	assert.Contains(t, gemini.prompts[0], "No reference material available.")
	assert.Zero(t, gemini.embeddings, "no reference store means no retrieval")
}

func TestAnalyzeResume_RetrievalFailureIsNotFatal(t *testing.T) {
	_, analysis, analyses, resumes := newAnalysisFixture()
	gemini := &fakeGemini{text: `{"ats_score": 80}`, embedErr: errors.New("quota")}

	analyzer := NewResumeAnalyzer(analyses, resumes, gemini, &fakeReferences{}, &fakeExtractor{text: "resume"}, 1)
	require.NoError(t, analyzer.AnalyzeResume(context.Background(), analysis.ID))
	assert.Equal(t, 80, analyses.result.ATSScore)
}

func TestAnalyzeResume_ExtractionFailureMarksFailed(t *testing.T) {
	_, analysis, analyses, resumes := newAnalysisFixture()

	analyzer := NewResumeAnalyzer(analyses, resumes, &fakeGemini{}, nil, &fakeExtractor{err: ErrUnsupportedFormat}, 1)
	err := analyzer.AnalyzeResume(context.Background(), analysis.ID)
	require.Error(t, err)

	assert.Equal(t, models.StatusFailed, analyses.analyses[analysis.ID].Status)
	assert.Contains(t, analyses.errorMsg, "Failed to read resume")
	assert.Nil(t, analyses.result)
}

func TestAnalyzeResume_UnparseableResponseMarksFailed(t *testing.T) {
	_, analysis, analyses, resumes := newAnalysisFixture()

	analyzer := NewResumeAnalyzer(analyses, resumes, &fakeGemini{text: "no json here"}, nil, &fakeExtractor{text: "resume"}, 1)
	require.Error(t, analyzer.AnalyzeResume(context.Background(), analysis.ID))
	assert.Equal(t, models.StatusFailed, analyses.analyses[analysis.ID].Status)
	assert.Contains(t, analyses.errorMsg, "Failed to parse analysis")
}
