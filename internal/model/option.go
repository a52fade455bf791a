package model

// Option is one selectable answer. It belongs to the task directly, not to a
// MultipleChoice row.
type Option struct {
	ID     string  `gorm:"primaryKey" json:"id" yaml:"id"`
	TaskID *string `gorm:"index" json:"task_id" yaml:"-"`
	Code   string  `json:"code" yaml:"code"`
	Label  string  `json:"label" yaml:"label"`
	Index  int     `gorm:"column:position" json:"index" yaml:"index"`
}
