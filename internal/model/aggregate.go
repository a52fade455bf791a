package model

// TaskAggregate is a read-only view of a task and its related rows. It is
// assembled per read and never persisted.
type TaskAggregate struct {
	Task            Task             `json:"task"`
	MultipleChoices []MultipleChoice `json:"multiple_choices"`
	Options         []Option         `json:"options"`
}
