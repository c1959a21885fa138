package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/ielts-scorer/internal/config"
	"github.com/fadilmartias/ielts-scorer/internal/database"
	"github.com/fadilmartias/ielts-scorer/internal/logger"
	"github.com/fadilmartias/ielts-scorer/internal/repository"
	"github.com/fadilmartias/ielts-scorer/internal/service"
	"github.com/fadilmartias/ielts-scorer/internal/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "data/ielts_writing_dataset.csv", "path to the IELTS writing dataset CSV")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	zl, err := logger.Setup(config.LoadAppConfig().Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, *file)
	stop()
	if err != nil {
		zl.Fatal("dataset import failed", zap.Error(err))
	}
	_ = zl.Sync()
}

// run imports the dataset at path into the vector store.
func run(ctx context.Context, path string) error {
	appConfig := config.LoadAppConfig()
	scoringConfig := config.LoadScoringConfig()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	db, err := database.Connect(config.LoadDBConfig(), appConfig)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	repo, err := repository.NewEssayRepository(db, scoringConfig.VectorStoreTable)
	if err != nil {
		return fmt.Errorf("vector store: %w", err)
	}
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		return fmt.Errorf("gemini: %w", err)
	}

	loader := usecase.NewDatasetLoader(repo, gemini, service.NewEssayPreprocessor(),
		scoringConfig.LoaderBatchSize, scoringConfig.LoaderBatchDelay)
	summary, err := loader.LoadCSV(ctx, f)
	if err != nil {
		return err
	}

	zap.L().Info("dataset imported",
		zap.String("table", repo.Table()),
		zap.Int("total_rows", summary.TotalRows),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("batches", summary.Batches))
	return nil
}
