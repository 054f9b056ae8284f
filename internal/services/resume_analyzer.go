package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type resumeAnalyzer struct {
	analysisRepo  repositories.AnalysisRepository
	resumeRepo    repositories.ResumeRepository
	geminiService GeminiService
	references    ReferenceStore
	extractor     TextExtractor
	promptBuilder *PromptBuilder
	maxRetries    int
}

// NewResumeAnalyzer wires the analysis pipeline. references may be nil, in
// which case prompts carry no reference material.
func NewResumeAnalyzer(
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	geminiService GeminiService,
	references ReferenceStore,
	extractor TextExtractor,
	maxRetries int,
) ResumeAnalyzer {
	return &resumeAnalyzer{
		analysisRepo:  analysisRepo,
		resumeRepo:    resumeRepo,
		geminiService: geminiService,
		references:    references,
		extractor:     extractor,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ATSResult is the JSON object the model is asked to return.
type ATSResult struct {
	ATSScore     int      `json:"ats_score"`
	MissingTerms []string `json:"missing_terms"`
	Suggestions  []string `json:"suggestions"`
	Summary      string   `json:"summary"`
}

func (a *resumeAnalyzer) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting resume analysis %s\n", analysisID)

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.fail(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	resume, err := a.resumeRepo.FindByID(analysis.ResumeID)
	if err != nil {
		a.fail(analysisID, fmt.Sprintf("Resume not found: %v", err))
		return fmt.Errorf("failed to get resume: %w", err)
	}

	log.Println("📄 Extracting resume text...")
	text, err := a.extractor.ExtractText(ctx, resume.FilePath)
	if err != nil {
		a.fail(analysisID, fmt.Sprintf("Failed to read resume: %v", err))
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	log.Println("🔍 Retrieving reference material...")
	reference, err := a.retrieveContext(ctx, analysis.JobTitle)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve reference context: %v\n", err)
		reference = FormatRAGContext(nil)
	}

	log.Println("🤖 Scoring resume with LLM...")
	prompt := a.promptBuilder.BuildATSPrompt(text, analysis.JobTitle, reference)
	response, err := a.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, a.maxRetries)
	if err != nil {
		a.fail(analysisID, fmt.Sprintf("Failed to analyze resume: %v", err))
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	result, err := ParseATSResult(response)
	if err != nil {
		a.fail(analysisID, fmt.Sprintf("Failed to parse analysis: %v", err))
		return err
	}

	log.Println("💾 Saving analysis results...")
	if err := a.analysisRepo.UpdateResult(analysisID, &repositories.AnalysisResult{
		ATSScore:     result.ATSScore,
		MissingTerms: result.MissingTerms,
		Suggestions:  result.Suggestions,
		Summary:      result.Summary,
	}); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Resume analysis %s completed (ATS %d)\n", analysisID, result.ATSScore)
	return nil
}

func (a *resumeAnalyzer) fail(analysisID uuid.UUID, msg string) {
	if err := a.analysisRepo.UpdateError(analysisID, msg); err != nil {
		log.Printf("⚠️  Failed to record analysis error for %s: %v\n", analysisID, err)
	}
}

func (a *resumeAnalyzer) retrieveContext(ctx context.Context, jobTitle string) (string, error) {
	if a.references == nil {
		return FormatRAGContext(nil), nil
	}

	embedding, err := a.geminiService.GenerateEmbedding(ctx, a.promptBuilder.BuildRetrievalQuery(jobTitle))
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := a.references.SearchSimilar(ctx, embedding, jobTitle, 3)
	if err != nil {
		return "", err
	}
	return FormatRAGContext(results), nil
}

// ParseATSResult decodes the model's answer, tolerating markdown fences and
// surrounding prose. The score is clamped to 0..100.
func ParseATSResult(response string) (*ATSResult, error) {
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("empty analysis response")
	}

	var result ATSResult
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	result.ATSScore = min(max(result.ATSScore, 0), 100)
	if result.MissingTerms == nil {
		result.MissingTerms = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return &result, nil
}

// extractJSON pulls the outermost JSON object out of text that may be wrapped
// in markdown.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
