package services

import (
	"context"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type BidService struct {
	API *api.Client
}

func (s *BidService) Place(ctx context.Context, input models.BidInput) (models.Bid, error) {
	if input.Amount <= 0 || input.CoverMessage == "" {
		return models.Bid{}, models.ErrEmptyField
	}
	var bid models.Bid
	if err := s.API.Post(ctx, "/bids", input, &bid); err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

func (s *BidService) ListForAssignment(ctx context.Context, assignmentID int) ([]models.Bid, error) {
	var page listview.Page[models.Bid]
	if err := s.API.Get(ctx, "/assignments/"+itoa(assignmentID)+"/bids", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (s *BidService) Mine(ctx context.Context, f listview.Filter) (listview.Page[models.Bid], error) {
	var page listview.Page[models.Bid]
	if err := s.API.Get(ctx, "/bids/my", f.Values(), &page); err != nil {
		return listview.Page[models.Bid]{}, err
	}
	return page, nil
}

// Accept turns the winning bid into an order.
func (s *BidService) Accept(ctx context.Context, bidID int) (models.Order, error) {
	var order models.Order
	if err := s.API.Post(ctx, "/bids/"+itoa(bidID)+"/accept", nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *BidService) Reject(ctx context.Context, bidID int) error {
	return s.API.Post(ctx, "/bids/"+itoa(bidID)+"/reject", nil, nil)
}

func (s *BidService) Withdraw(ctx context.Context, bidID int) error {
	return s.API.Delete(ctx, "/bids/"+itoa(bidID))
}
