package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/fadilmartias/ielts-scorer/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// Dataset columns, in file order.
const (
	colTaskType = iota
	colQuestion
	colEssay
	colExaminerComment
	colTaskResponse
	colCoherence
	colLexical
	colGrammar
	colOverall
	datasetColumns
)

var ErrNoValidRows = errors.New("no valid documents processed: CSV format mismatch, all entries filtered out, or header row only")

type LoadSummary struct {
	TotalRows int `json:"total_rows"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Batches   int `json:"batches"`
}

// DatasetLoader imports the graded IELTS writing dataset into the vector store.
type DatasetLoader struct {
	store        EssayStore
	embedder     service.EmbeddingServiceInterface
	preprocessor *service.EssayPreprocessor
	BatchSize    int
	BatchDelay   time.Duration
}

func NewDatasetLoader(store EssayStore, embedder service.EmbeddingServiceInterface, preprocessor *service.EssayPreprocessor, batchSize int, batchDelay time.Duration) *DatasetLoader {
	if preprocessor == nil {
		preprocessor = service.NewEssayPreprocessor()
	}
	if batchSize <= 0 {
		batchSize = 2
	}
	return &DatasetLoader{
		store:        store,
		embedder:     embedder,
		preprocessor: preprocessor,
		BatchSize:    batchSize,
		BatchDelay:   batchDelay,
	}
}

// LoadCSV parses r, keeps the usable Task 2 rows and stores them batch by
// batch, pausing BatchDelay between batches.
func (l *DatasetLoader) LoadCSV(ctx context.Context, r io.Reader) (LoadSummary, error) {
	log := zap.L()
	var summary LoadSummary

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("read csv header: %w", err)
	}
	log.Info("csv header", zap.Strings("columns", header))

	var essays []model.Essay
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed record is skipped, any other read error ends the import.
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return summary, fmt.Errorf("read csv: %w", err)
			}
		}
		summary.TotalRows++
		if err != nil {
			log.Warn("skipping unreadable record", zap.Error(err))
			summary.Skipped++
			continue
		}
		lineNumber, _ := reader.FieldPos(0)

		essay, reason := l.buildEssay(line, lineNumber)
		if reason != "" {
			log.Info("skipping line", zap.Int("line", lineNumber), zap.String("reason", reason))
			summary.Skipped++
			continue
		}
		essays = append(essays, *essay)
		summary.Processed++
	}

	log.Info("csv processing summary",
		zap.Int("total", summary.TotalRows),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped))

	if len(essays) == 0 {
		return summary, ErrNoValidRows
	}

	total := len(essays)
	for i := 0; i < total; i += l.BatchSize {
		end := min(i+l.BatchSize, total)
		batch := essays[i:end]

		for j := range batch {
			emb, err := l.embedder.GenerateEmbedding(ctx, batch[j].Content)
			if err != nil {
				return summary, fmt.Errorf("embed line %d: %w", batch[j].SourceLine, err)
			}
			batch[j].Embedding = pgvector.NewVector(emb)
		}
		if err := l.store.CreateEssays(ctx, batch); err != nil {
			return summary, fmt.Errorf("store batch %d: %w", summary.Batches+1, err)
		}
		summary.Batches++

		log.Info("stored batch",
			zap.Int("batch", summary.Batches),
			zap.Int("done", end),
			zap.Int("total", total),
			zap.Float64("percent", float64(end)*100/float64(total)))

		if end < total && l.BatchDelay > 0 {
			select {
			case <-time.After(l.BatchDelay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}
	}

	return summary, nil
}

// buildEssay returns the essay for line, or a non-empty skip reason.
func (l *DatasetLoader) buildEssay(line []string, lineNumber int) (*model.Essay, string) {
	if len(line) < datasetColumns {
		return nil, fmt.Sprintf("only %d columns found", len(line))
	}

	taskType := strings.TrimSpace(line[colTaskType])
	if taskType != dto.DefaultTaskType {
		return nil, fmt.Sprintf("invalid task type: %s", taskType)
	}

	question := strings.TrimSpace(line[colQuestion])
	rawEssay := strings.TrimSpace(line[colEssay])
	overall := strings.TrimSpace(line[colOverall])
	if question == "" || rawEssay == "" || overall == "" {
		return nil, "missing required fields"
	}

	cleanEssay := l.preprocessor.CleanEssay(rawEssay)
	tr := strings.TrimSpace(line[colTaskResponse])
	cc := strings.TrimSpace(line[colCoherence])
	lr := strings.TrimSpace(line[colLexical])
	gra := strings.TrimSpace(line[colGrammar])
	comment := strings.TrimSpace(line[colExaminerComment])

	return &model.Essay{
		TaskType:        taskType,
		Question:        question,
		Topic:           l.preprocessor.ExtractMainTopic(question),
		Body:            cleanEssay,
		ExaminerComment: comment,
		TaskResponse:    tr,
		Coherence:       cc,
		Lexical:         lr,
		Grammar:         gra,
		Band:            overall,
		WordCount:       l.preprocessor.CountWords(cleanEssay),
		SourceLine:      lineNumber,
		Content:         BuildDocumentContent(question, cleanEssay, comment, tr, cc, lr, gra, overall),
	}, ""
}
