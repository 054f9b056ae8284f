package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/services"
)

func main() {
	dir := flag.String("dir", "./reference_docs", "directory of <Job_Title>.pdf reference documents")
	parallel := flag.Int("parallel", 3, "documents processed at once")
	flag.Parse()

	log.Println("🚀 Starting reference document ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	store, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := store.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	paths, err := filepath.Glob(filepath.Join(*dir, "*.pdf"))
	if err != nil || len(paths) == 0 {
		log.Fatalf("❌ No PDF documents found in %s", *dir)
	}

	extractor := services.NewTextExtractor(nil)
	chunker := services.NewTextChunker()

	var successCount, failCount atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*parallel, 1))

	for _, path := range paths {
		g.Go(func() error {
			if err := ingest(gctx, path, extractor, chunker, geminiService, store); err != nil {
				log.Printf("❌ %s: %v", filepath.Base(path), err)
				failCount.Add(1)
				return nil
			}
			successCount.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount.Load())
	log.Printf("   ❌ Failed: %d documents", failCount.Load())
	log.Println(strings.Repeat("=", 60))

	if failCount.Load() > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}

func ingest(
	ctx context.Context,
	path string,
	extractor services.TextExtractor,
	chunker services.TextChunker,
	gemini services.GeminiService,
	store services.ReferenceStore,
) error {
	jobTitle := services.JobTitleFromFilename(path)
	docID := strings.ToLower(strings.ReplaceAll(jobTitle, " ", "_"))
	log.Printf("📄 Processing %s as %q", filepath.Base(path), jobTitle)

	text, err := extractor.ExtractText(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	chunks := chunker.ChunkText(text, 1000, 200)
	log.Printf("   ✂️  %s: %d characters, %d chunks", jobTitle, len(text), len(chunks))

	// Re-ingesting a document replaces its previous chunks
	if err := store.DeleteDocument(ctx, docID); err != nil {
		return err
	}

	stored := 0
	for i, chunk := range chunks {
		embedding, err := gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("   ❌ %s: failed to embed chunk %d: %v", jobTitle, i+1, err)
			continue
		}
		if err := store.UpsertChunk(ctx, docID, jobTitle, chunk, embedding); err != nil {
			log.Printf("   ❌ %s: failed to store chunk %d: %v", jobTitle, i+1, err)
			continue
		}
		stored++
	}

	if stored == 0 {
		return fmt.Errorf("no chunks stored")
	}
	log.Printf("   ✅ %s: %d/%d chunks stored", jobTitle, stored, len(chunks))
	return nil
}
