package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/fadilmartias/ielts-scorer/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// essayColumns lists everything except the embedding.
const essayColumns = "id, task_type, question, topic, essay, examiner_comment, task_response, " +
	"coherence, lexical, grammar, band, word_count, source_line, content, created_at, updated_at"

// EssayRepository is the vector store of reference essays. The table it
// reads and writes is the store's location, chosen at construction.
type EssayRepository struct {
	db    *gorm.DB
	table string
}

func NewEssayRepository(db *gorm.DB, table string) (*EssayRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid vector store table name %q", table)
	}
	return &EssayRepository{db: db, table: table}, nil
}

func (r *EssayRepository) Table() string {
	return r.table
}

// Migrate prepares the pgvector extension and the essay table.
func (r *EssayRepository) Migrate() error {
	if err := r.db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	if err := r.db.Table(r.table).AutoMigrate(&model.Essay{}); err != nil {
		return fmt.Errorf("migrate %s: %w", r.table, err)
	}
	return nil
}

// SearchSimilar returns at most topK essays whose cosine similarity to
// embedding is at least threshold, most similar first.
func (r *EssayRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int, threshold float64) ([]model.Essay, error) {
	var essays []model.Essay

	// <=> is pgvector's cosine distance, similarity = 1 - distance
	err := r.db.WithContext(ctx).Raw(`
        SELECT *, 1 - (embedding <=> ?) AS similarity
        FROM ?
        WHERE 1 - (embedding <=> ?) >= ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `, embedding, clause.Table{Name: r.table}, embedding, threshold, embedding, topK).Scan(&essays).Error
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return essays, nil
}

func (r *EssayRepository) CreateEssays(ctx context.Context, essays []model.Essay) error {
	if len(essays) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Table(r.table).Create(&essays).Error
}

func (r *EssayRepository) FindEssayByID(ctx context.Context, id string) (*model.Essay, error) {
	var e model.Essay
	err := r.db.WithContext(ctx).Table(r.table).Select(essayColumns).First(&e, "id = ?", id).Error
	return &e, err
}

// ListEssays pages through the store without loading embeddings.
func (r *EssayRepository) ListEssays(ctx context.Context, page, pageSize int) ([]model.Essay, int64, error) {
	var (
		essays []model.Essay
		total  int64
	)
	if err := r.db.WithContext(ctx).Table(r.table).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Table(r.table).
		Select(essayColumns).
		Order("source_line ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&essays).Error
	return essays, total, err
}
