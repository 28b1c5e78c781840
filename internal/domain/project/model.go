package project

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the project lifecycle state. Transitions are monotonic along
// accepted -> in_progress -> completion_requested -> completed, with
// completion_requested allowed to fall back to in_progress on rejection and
// cancellation reachable only from accepted/in_progress.
type Status string

const (
	StatusAccepted            Status = "accepted"
	StatusInProgress          Status = "in_progress"
	StatusCompletionRequested Status = "completion_requested"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
)

// Project is the aggregate root of one accepted engagement between a client
// and a worker. Checkpoints, messages and payments belong to it and are only
// mutated through the lifecycle service.
type Project struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Title          string                      `gorm:"size:200;not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `json:"required_skills"`
	Status         Status                      `gorm:"size:32;default:'accepted';index" json:"status"`
	ClientID       uint                        `gorm:"not null;index" json:"client_id"`
	WorkerID       uint                        `gorm:"not null;index" json:"worker_id"`
	AgreedBudget   int64                       `gorm:"not null" json:"agreed_budget"`
	Deadline       *time.Time                  `json:"deadline,omitempty"`
	StartedAt      *time.Time                  `json:"started_at,omitempty"`
	CompletedAt    *time.Time                  `json:"completed_at,omitempty"`

	// Recorded on final client approval.
	Rating          *int   `json:"rating,omitempty"`
	CompletionNotes string `gorm:"type:text" json:"completion_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// IsParty reports whether userID is the project's client or worker.
func (p *Project) IsParty(userID uint) bool {
	return userID == p.ClientID || userID == p.WorkerID
}

// Terminal reports whether the project reached a final state.
func (p *Project) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}

// Cancellable reports whether the state machine permits cancellation
// (payment checks are enforced separately by the lifecycle service).
func (p *Project) Cancellable() bool {
	return p.Status == StatusAccepted || p.Status == StatusInProgress
}
