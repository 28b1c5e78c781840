package checkpoint

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusCompleted Status = "completed"
)

// Checkpoint is one ordered milestone of a project. Order values form a
// contiguous sequence starting at 1 per project.
type Checkpoint struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	Order       int        `gorm:"column:seq_no;not null" json:"order"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      Status     `gorm:"size:16;default:'pending'" json:"status"`

	WorkerNotes string `gorm:"type:text" json:"worker_notes,omitempty"`
	ClientNotes string `gorm:"type:text" json:"client_notes,omitempty"`

	// Opaque references issued by the upload service; file bytes never
	// touch this engine.
	DeliverableRefs datatypes.JSONSlice[string] `json:"deliverable_refs,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Checkpoint) TableName() string {
	return "checkpoints"
}
