package main

// Analyze a resume file from the command line without starting the server:
//   go run ./cmd/analyze -file resume.pdf [-job job.txt]

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"resume-quality/internal/analysis"
	"resume-quality/internal/config"
	"resume-quality/internal/extract"
	"resume-quality/internal/grammar"
	"resume-quality/internal/llm/gemini"
)

func main() {
	filePath := flag.String("file", "", "resume file to analyze (.pdf, .docx, .txt)")
	jobPath := flag.String("job", "", "optional job description text file")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	jobDescription := ""
	if *jobPath != "" {
		raw, err := os.ReadFile(*jobPath)
		if err != nil {
			log.Fatalf("read job description: %v", err)
		}
		jobDescription = string(raw)
	}

	pipeline := &analysis.Pipeline{Timeout: cfg.CapabilityTimeout}
	if ocr := extract.NewCommandOCR(cfg.PdftoppmPath, cfg.TesseractPath); ocr != nil {
		pipeline.OCR = ocr
	}
	if checker, err := grammar.NewClient(cfg.GrammarServerURL, cfg.GrammarLocale, cfg.CapabilityTimeout); err == nil {
		pipeline.Grammar = checker
	}
	if client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EmbeddingModel); err == nil {
		pipeline.Embedder = client
		pipeline.Generator = client
	}

	feedback, err := pipeline.Analyze(ctx, *filePath, jobDescription)
	if err != nil {
		log.Fatalf("analysis error: %v", err)
	}

	fmt.Println(feedback)
}
