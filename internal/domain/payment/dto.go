package payment

type RecordPaymentDTO struct {
	Amount            int64  `json:"amount" binding:"required,gt=0"`
	ExternalReference string `json:"external_reference"`
}

type RefundPaymentDTO struct {
	Reason string `json:"reason" binding:"required"`
}
