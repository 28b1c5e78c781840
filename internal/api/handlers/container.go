package handlers

import (
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/internal/notify"
)

type Handlers struct {
	ActiveProject *ActiveProjectHandler
	Chat          *ChatHandler
	Payment       *PaymentHandler
	Events        *EventStreamHandler
}

func New(svc *application.LifecycleService, hub *notify.Hub) *Handlers {
	return &Handlers{
		ActiveProject: NewActiveProjectHandler(svc),
		Chat:          NewChatHandler(svc),
		Payment:       NewPaymentHandler(svc),
		Events:        NewEventStreamHandler(svc, hub),
	}
}
