package services

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type GigService struct {
	API *api.Client
}

// Search is the fetcher behind the gig browsing screen.
func (s *GigService) Search(ctx context.Context, f listview.Filter) (listview.Page[models.Gig], error) {
	var page listview.Page[models.Gig]
	if err := s.API.Get(ctx, "/gigs", f.Values(), &page); err != nil {
		return listview.Page[models.Gig]{}, err
	}
	return page, nil
}

func (s *GigService) GetByID(ctx context.Context, id int) (models.Gig, error) {
	var gig models.Gig
	if err := s.API.Get(ctx, "/gigs/"+itoa(id), nil, &gig); err != nil {
		if api.IsNotFound(err) {
			return models.Gig{}, models.ErrGigNotFound
		}
		return models.Gig{}, err
	}
	return gig, nil
}

func (s *GigService) GetByUserID(ctx context.Context, userID int) ([]models.Gig, error) {
	var page listview.Page[models.Gig]
	params := url.Values{}
	params.Set("user_id", itoa(userID))
	if err := s.API.Get(ctx, "/gigs", params, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Create posts the gig fields and its cover image as one multipart
// request.
func (s *GigService) Create(ctx context.Context, input models.GigInput, coverName string, cover io.Reader) (models.Gig, error) {
	fields := map[string]string{
		"title":         input.Title,
		"description":   input.Description,
		"category":      input.Category,
		"price":         strconv.FormatFloat(input.Price, 'f', -1, 64),
		"delivery_days": itoa(input.DeliveryDays),
	}
	var files []api.File
	if cover != nil {
		files = append(files, api.File{Field: "cover_image", Name: coverName, Content: cover})
	}
	var gig models.Gig
	if err := s.API.PostMultipart(ctx, "/gigs", fields, files, &gig); err != nil {
		return models.Gig{}, err
	}
	return gig, nil
}

func (s *GigService) Update(ctx context.Context, id int, input models.GigInput) (models.Gig, error) {
	var gig models.Gig
	if err := s.API.Put(ctx, "/gigs/"+itoa(id), input, &gig); err != nil {
		return models.Gig{}, err
	}
	return gig, nil
}

func (s *GigService) SetStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	return s.API.Put(ctx, "/gigs/"+itoa(id)+"/status", body, nil)
}

func (s *GigService) Delete(ctx context.Context, id int) error {
	return s.API.Delete(ctx, "/gigs/"+itoa(id))
}
