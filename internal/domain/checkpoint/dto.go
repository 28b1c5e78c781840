package checkpoint

import "time"

type CreateCheckpointDTO struct {
	Order       int        `json:"order" binding:"required,min=1"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

// SubmitCheckpointDTO carries the worker submission. Deliverable refs are the
// object keys returned by the upload service for the multipart files.
type SubmitCheckpointDTO struct {
	Notes           string   `form:"notes" json:"notes"`
	DeliverableRefs []string `json:"deliverable_refs"`
}

const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

type ReviewCheckpointDTO struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
	Notes    string `json:"notes"`
}
