package services

import (
	"context"
	"net/url"
	"strings"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type ChatService struct {
	API *api.Client
}

func (s *ChatService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var page listview.Page[models.Conversation]
	if err := s.API.Get(ctx, "/chats", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (s *ChatService) Messages(ctx context.Context, conversationID, page, pageSize int) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	params := url.Values{}
	params.Set("page", itoa(page))
	params.Set("page_size", itoa(pageSize))

	var resp listview.Page[models.Message]
	err := s.API.Get(ctx, "/chats/"+itoa(conversationID)+"/messages", params, &resp)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, models.ErrChatNotFound
		}
		return nil, err
	}
	return resp.Results, nil
}

func (s *ChatService) Send(ctx context.Context, req models.SendMessageRequest) (models.Message, error) {
	if strings.TrimSpace(req.Text) == "" {
		return models.Message{}, models.ErrEmptyField
	}
	var message models.Message
	if err := s.API.Post(ctx, "/chats/"+itoa(req.ConversationID)+"/messages", req, &message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// MarkRead is fire-and-forget at call sites: the unread counter is
// zeroed locally without waiting for this to come back.
func (s *ChatService) MarkRead(ctx context.Context, conversationID int) error {
	return s.API.Post(ctx, "/chats/"+itoa(conversationID)+"/read", nil, nil)
}
