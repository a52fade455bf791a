package model

// Cardinality controls how many options a respondent may pick.
type Cardinality string

const (
	SelectOne      Cardinality = "select_one"
	SelectMultiple Cardinality = "select_multiple"
)

// MultipleChoice describes the choice settings attached to a task.
type MultipleChoice struct {
	ID             string      `gorm:"primaryKey" json:"id" yaml:"id"`
	TaskID         *string     `gorm:"index" json:"task_id" yaml:"-"`
	Cardinality    Cardinality `json:"cardinality" yaml:"cardinality"`
	HasOtherOption bool        `json:"has_other_option" yaml:"has_other_option"`
}
