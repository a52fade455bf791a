package model

import "time"

// TaskType names the kind of answer a task collects.
type TaskType string

const (
	TaskTypeText           TaskType = "text"
	TaskTypeNumber         TaskType = "number"
	TaskTypeDate           TaskType = "date"
	TaskTypeTime           TaskType = "time"
	TaskTypeMultipleChoice TaskType = "multiple_choice"
	TaskTypePhoto          TaskType = "photo"
	TaskTypeDropPin        TaskType = "drop_pin"
	TaskTypeDrawArea       TaskType = "draw_area"
)

// Task is a single question within a survey job.
type Task struct {
	ID         string    `gorm:"primaryKey" json:"id" yaml:"id"`
	JobID      string    `gorm:"index" json:"job_id" yaml:"job_id"`
	Index      int       `gorm:"column:position" json:"index" yaml:"index"`
	Type       TaskType  `json:"type" yaml:"type"`
	Label      string    `json:"label" yaml:"label"`
	IsRequired bool      `json:"is_required" yaml:"is_required"`
	CreatedAt  time.Time `json:"created_at" yaml:"-"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"-"`
}
