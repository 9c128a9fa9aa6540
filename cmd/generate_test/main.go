package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt" // For initial error printing before logger is up
	"os"
	"time"

	"ielts-reading/internal/adapter/completion"
	"ielts-reading/internal/config"
	"ielts-reading/internal/domain"
	"ielts-reading/internal/logger"
	"ielts-reading/internal/parser"
	"ielts-reading/internal/prompt"
	"ielts-reading/internal/service"

	"go.uber.org/zap"
)

// generatedTest is the document written by this command
type generatedTest struct {
	Passage   *domain.Passage   `json:"passage"`
	Questions []domain.Question `json:"questions"`
}

func main() {
	testType := flag.String("type", "academic", "test type: academic or general")
	topic := flag.String("topic", prompt.DefaultTopic, "passage topic")
	difficulty := flag.String("difficulty", prompt.DefaultDifficulty, "passage difficulty")
	count := flag.Int("count", 0, "number of questions; 0 uses the full distribution")
	out := flag.String("out", "", "output file; stdout when empty")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	variant, err := domain.ParseTestVariant(*testType)
	if err != nil {
		l.Fatal("Invalid test type", zap.Error(err))
	}

	client, err := completion.NewFromConfig(cfg.LLM)
	if err != nil {
		l.Fatal("Failed to create completion client", zap.Error(err))
	}

	distribution := domain.DefaultDistribution()
	for v, rows := range cfg.Reading.Distribution {
		distribution[v] = rows
	}
	bands, err := domain.NewBandScoreConverter(domain.DefaultBandTables())
	if err != nil {
		l.Fatal("Invalid band tables", zap.Error(err))
	}

	// Results are not scored here, so no cache or attempt store is wired
	svc := service.NewReadingService(client, prompt.NewComposer(), parser.NewQuestionParser(nil),
		distribution, bands, nil, nil, cfg.Pipeline)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	l.Info("Generating test", zap.String("test_type", string(variant)), zap.String("topic", *topic))
	passage, err := svc.GeneratePassage(ctx, variant, *topic, *difficulty)
	if err != nil {
		l.Fatal("Passage generation failed", zap.Error(err))
	}
	questions, err := svc.GenerateQuestions(ctx, passage.Content, variant, *count)
	if err != nil {
		l.Fatal("Question generation failed", zap.Error(err))
	}

	data, err := json.MarshalIndent(generatedTest{Passage: passage, Questions: questions}, "", "  ")
	if err != nil {
		l.Fatal("Failed to encode test", zap.Error(err))
	}
	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		l.Fatal("Failed to write output", zap.String("path", *out), zap.Error(err))
	}
	l.Info("Test written", zap.String("path", *out), zap.Int("questions", len(questions)))
}
