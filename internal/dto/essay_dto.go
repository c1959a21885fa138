package dto

import (
	"time"

	"github.com/google/uuid"
)

type EssayDTO struct {
	ID         uuid.UUID `json:"id"`
	TaskType   string    `json:"task_type"`
	Question   string    `json:"question"`
	Topic      string    `json:"topic"`
	Band       string    `json:"band"`
	WordCount  int       `json:"word_count"`
	SourceLine int       `json:"source_line"`
	CreatedAt  time.Time `json:"created_at"`
}
