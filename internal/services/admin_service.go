package services

import (
	"context"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type AdminService struct {
	API *api.Client
}

func (s *AdminService) ListUsers(ctx context.Context, f listview.Filter) (listview.Page[models.User], error) {
	var page listview.Page[models.User]
	if err := s.API.Get(ctx, "/admin/users", f.Values(), &page); err != nil {
		return listview.Page[models.User]{}, err
	}
	return page, nil
}

func (s *AdminService) BanUser(ctx context.Context, userID int) error {
	return s.API.Post(ctx, "/admin/users/"+itoa(userID)+"/ban", nil, nil)
}

func (s *AdminService) UnbanUser(ctx context.Context, userID int) error {
	return s.API.Post(ctx, "/admin/users/"+itoa(userID)+"/unban", nil, nil)
}

func (s *AdminService) PendingVerifications(ctx context.Context, f listview.Filter) (listview.Page[models.VerificationRequest], error) {
	var page listview.Page[models.VerificationRequest]
	if err := s.API.Get(ctx, "/admin/verifications", f.Values(), &page); err != nil {
		return listview.Page[models.VerificationRequest]{}, err
	}
	return page, nil
}

// ReviewVerification approves or rejects one step of a seller's
// verification.
func (s *AdminService) ReviewVerification(ctx context.Context, id int, status, comment string) (models.VerificationRequest, error) {
	body := map[string]string{"status": status, "comment": comment}
	var req models.VerificationRequest
	if err := s.API.Put(ctx, "/admin/verifications/"+itoa(id), body, &req); err != nil {
		return models.VerificationRequest{}, err
	}
	return req, nil
}
