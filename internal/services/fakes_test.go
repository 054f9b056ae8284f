package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type fakeUserRepo struct {
	byName map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if _, ok := f.byName[user.Username]; ok {
		return repositories.ErrUserExists
	}
	f.byName[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeInterviewRepo struct {
	mu    sync.Mutex
	saved []models.InterviewSummary
	err   error
}

func (f *fakeInterviewRepo) SaveSummary(_ context.Context, userID uuid.UUID, summary *models.InterviewSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	summary.UserID = userID
	f.saved = append(f.saved, *summary)
	return nil
}

func (f *fakeInterviewRepo) LoadSummaries(_ context.Context, userID uuid.UUID, limit int) ([]models.InterviewSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InterviewSummary
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].UserID == userID {
			out = append(out, f.saved[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeGenerator struct {
	set   models.QuestionSet
	err   error
	calls []interview.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req interview.GenerateRequest) (models.QuestionSet, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

type fakeAnalysisRepo struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*models.ResumeAnalysis
	statuses []models.AnalysisStatus
	result   *repositories.AnalysisResult
	errorMsg string
}

func newFakeAnalysisRepo(analyses ...*models.ResumeAnalysis) *fakeAnalysisRepo {
	f := &fakeAnalysisRepo{analyses: make(map[uuid.UUID]*models.ResumeAnalysis)}
	for _, a := range analyses {
		f.analyses[a.ID] = a
	}
	return f
}

func (f *fakeAnalysisRepo) Create(a *models.ResumeAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyses[a.ID] = a
	return nil
}

func (f *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.ResumeAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.analyses[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeAnalysisRepo) UpdateResult(id uuid.UUID, result *repositories.AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusCompleted
	f.statuses = append(f.statuses, models.StatusCompleted)
	f.result = result
	return nil
}

func (f *fakeAnalysisRepo) UpdateError(id uuid.UUID, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusFailed
	f.statuses = append(f.statuses, models.StatusFailed)
	f.errorMsg = msg
	return nil
}

func (f *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.ResumeAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ResumeAnalysis
	for _, a := range f.analyses {
		if a.Status == models.StatusQueued && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
}

func (f *fakeResumeRepo) Create(r *models.Resume) error {
	f.resumes[r.ID] = r
	return nil
}

func (f *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	if r, ok := f.resumes[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeGemini struct {
	replies    []string
	text       string
	err        error
	embedErr   error
	prompts    []string
	imageText  string
	embeddings int
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	f.embeddings++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.replies) > 0 {
		reply := f.replies[0]
		f.replies = f.replies[1:]
		return reply, f.err
	}
	return f.text, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) ExtractImageText(_ context.Context, _ []byte, _ string) (string, error) {
	return f.imageText, f.err
}

type fakeReferences struct {
	results  []SearchResult
	jobTitle string
}

func (f *fakeReferences) InitCollection(context.Context) error { return nil }

func (f *fakeReferences) UpsertChunk(context.Context, string, string, string, []float32) error {
	return nil
}

func (f *fakeReferences) SearchSimilar(_ context.Context, _ []float32, jobTitle string, _ int) ([]SearchResult, error) {
	f.jobTitle = jobTitle
	return f.results, nil
}

func (f *fakeReferences) DeleteDocument(context.Context, string) error { return nil }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}
