package models

import "time"

// Task status values. DONE and COMPLETED both count as finished for the
// completion gate; legacy rows use either spelling.
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
	TaskStatusCompleted  = "COMPLETED"
)

// Task represents the tasks table
type Task struct {
	TaskID      int        `gorm:"primaryKey;column:task_id" json:"task_id"`
	ProjectID   int        `gorm:"column:project_id" json:"project_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Status      string     `gorm:"column:status" json:"status"`
	AssignedTo  *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// TableName overrides the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsFinished reports whether the task counts toward the completion gate.
func (t *Task) IsFinished() bool {
	return t != nil && (t.Status == TaskStatusDone || t.Status == TaskStatusCompleted)
}
