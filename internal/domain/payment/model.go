package payment

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Payment is one append-only ledger entry against a project's budget.
// Amounts are in minor currency units. A refund is a new entry whose
// SourceID references the completed payment it reverses; the source record
// is never mutated.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	Amount      int64      `gorm:"not null" json:"amount"`
	Status      Status     `gorm:"size:16;default:'pending';index" json:"status"`
	ExternalRef string     `gorm:"size:64" json:"external_reference,omitempty"`
	SourceID    *uint      `json:"source_id,omitempty"`
	Reason      string     `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Summary reconciles the ledger against the agreed budget.
type Summary struct {
	AgreedBudget int64 `json:"agreed_budget"`
	TotalPaid    int64 `json:"total_paid"`
	Remaining    int64 `json:"remaining"`
}
