package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/repositories"
)

// Worker runs queued resume analyses in the background.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     ResumeAnalyzer
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once

	// inFlight stops the poller from enqueueing a job twice
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analyzer ResumeAnalyzer,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: 10 * time.Second,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	w.mu.Lock()
	if _, busy := w.inFlight[analysisID]; busy {
		w.mu.Unlock()
		return
	}
	w.inFlight[analysisID] = struct{}{}
	w.mu.Unlock()

	select {
	case w.jobQueue <- analysisID:
		log.Printf("📥 Job %s enqueued\n", analysisID)
	case <-w.stopChan:
		w.release(analysisID)
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", analysisID)
	}
}

func (w *worker) release(analysisID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, analysisID)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d context done\n", workerID)
			return
		case analysisID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, analysisID)
			if err := w.analyzer.AnalyzeResume(ctx, analysisID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v\n", workerID, analysisID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, analysisID)
			}
			w.release(analysisID)
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.analysisRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending jobs\n", len(pending))
			}
			for _, job := range pending {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
