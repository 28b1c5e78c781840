package application

import (
	"context"
	"strings"

	"github.com/karyalink/engagement-go/internal/domain/chat"
	"github.com/karyalink/engagement-go/internal/notify"
	"github.com/karyalink/engagement-go/internal/repository"
)

const defaultChatPageSize = 50

// appendChat writes one message inside the caller's transaction. Used both
// for party messages and for lifecycle feedback routed through the chat so
// the conversation stays the single audit trail.
func (s *LifecycleService) appendChat(r *repository.Repos, projectID, senderID uint, body string) error {
	m := &chat.Message{
		ProjectID: projectID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: s.nowFn(),
	}
	return asAppError(r.Chat.CreateMessage(m))
}

// PostMessage appends one message to the project conversation.
func (s *LifecycleService) PostMessage(ctx context.Context, projectID, senderID uint, body string) (*chat.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	l := s.projectLock(projectID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var msg *chat.Message
	err := s.Repos.ExecTx(ctx, func(r *repository.Repos) error {
		p, err := r.Project.GetProjectByID(projectID)
		if err != nil {
			return asAppError(err)
		}
		if !p.IsParty(senderID) {
			return ErrForbidden
		}
		m := &chat.Message{
			ProjectID: projectID,
			SenderID:  senderID,
			Body:      body,
			CreatedAt: s.nowFn(),
		}
		if err := asAppError(r.Chat.CreateMessage(m)); err != nil {
			return err
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(projectID, notify.EventChatMessage, msg)
	return msg, nil
}

// ListMessages pages the conversation oldest to newest. The returned cursor
// restarts the listing after the last message seen.
func (s *LifecycleService) ListMessages(ctx context.Context, projectID, userID uint, page chat.Page) (*chat.MessageList, error) {
	p, err := s.Repos.Project.GetProjectByID(projectID)
	if err != nil {
		return nil, asAppError(err)
	}
	if !p.IsParty(userID) {
		return nil, ErrForbidden
	}
	limit := page.Limit
	if limit <= 0 {
		limit = defaultChatPageSize
	}
	msgs, err := s.Repos.Chat.ListByProjectID(projectID, page.AfterID, limit)
	if err != nil {
		return nil, asAppError(err)
	}
	out := &chat.MessageList{Messages: msgs, NextCursor: page.AfterID}
	if len(msgs) > 0 {
		out.NextCursor = msgs[len(msgs)-1].ID
	}
	return out, nil
}
