package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// EmbeddingDimensions matches the output size of gemini-embedding-001.
const EmbeddingDimensions = 3072

// Essay is a graded reference essay from the IELTS writing dataset, stored
// with its embedding so it can be retrieved as a scoring example.
type Essay struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TaskType        string          `gorm:"type:varchar(10);index" json:"task_type"`
	Question        string          `gorm:"type:text" json:"question"`
	Topic           string          `gorm:"type:text" json:"topic"`
	Body            string          `gorm:"column:essay;type:text" json:"essay"`
	ExaminerComment string          `gorm:"type:text" json:"examiner_comment"`
	TaskResponse    string          `gorm:"type:varchar(10)" json:"task_response"`
	Coherence       string          `gorm:"type:varchar(10)" json:"coherence_cohesion"`
	Lexical         string          `gorm:"type:varchar(10)" json:"lexical_resource"`
	Grammar         string          `gorm:"type:varchar(10)" json:"grammatical_range_accuracy"`
	Band            string          `gorm:"type:varchar(10);index" json:"band"`
	WordCount       int             `json:"word_count"`
	SourceLine      int             `json:"source_line"`
	Content         string          `gorm:"type:text" json:"content"`
	Embedding       pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Similarity      float64         `gorm:"->;-:migration" json:"similarity,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (e *Essay) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
