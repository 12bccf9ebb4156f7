package services

import (
	"context"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type NotificationService struct {
	API *api.Client
}

func (s *NotificationService) List(ctx context.Context, f listview.Filter) (listview.Page[models.Notification], error) {
	var page listview.Page[models.Notification]
	if err := s.API.Get(ctx, "/notifications", f.Values(), &page); err != nil {
		return listview.Page[models.Notification]{}, err
	}
	return page, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	var count models.UnreadCount
	if err := s.API.Get(ctx, "/notifications/unread_count", nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.API.Post(ctx, "/notifications/"+itoa(id)+"/read", nil, nil)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.API.Post(ctx, "/notifications/read_all", nil, nil)
}
