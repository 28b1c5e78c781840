package project

type RequestCompletionDTO struct {
	Notes string `json:"notes"`
}

type ApproveCompletionDTO struct {
	Rating          int    `json:"rating" binding:"required,min=1,max=5"`
	CompletionNotes string `json:"completion_notes"`
}

type RejectCompletionDTO struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelDTO struct {
	Reason string `json:"reason"`
}
