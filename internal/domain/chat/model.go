package chat

import "time"

// Message is one immutable chat entry scoped to a project. There is no edit
// or delete in the canonical record. Ordering is (created_at, id); the
// autoincrement id breaks ties when clock resolution collides.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "project_messages"
}
