package chat

type PostMessageDTO struct {
	Message string `json:"message" binding:"required"`
}

// Page is a cursor over the project conversation, oldest to newest.
type Page struct {
	AfterID uint `form:"after_id"`
	Limit   int  `form:"limit"`
}

type MessageList struct {
	Messages   []Message `json:"messages"`
	NextCursor uint      `json:"next_cursor"`
}
