package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type OrderService struct {
	API *api.Client
}

// Purchase creates an order for a gig. The idempotency key protects
// against a double submit from a retried form.
func (s *OrderService) Purchase(ctx context.Context, gigID int) (models.Order, error) {
	body := map[string]interface{}{
		"gig_id":          gigID,
		"idempotency_key": uuid.NewString(),
	}
	var order models.Order
	if err := s.API.Post(ctx, "/orders", body, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, f listview.Filter) (listview.Page[models.Order], error) {
	var page listview.Page[models.Order]
	if err := s.API.Get(ctx, "/orders", f.Values(), &page); err != nil {
		return listview.Page[models.Order]{}, err
	}
	return page, nil
}

func (s *OrderService) GetByID(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	if err := s.API.Get(ctx, "/orders/"+itoa(id), nil, &order); err != nil {
		if api.IsNotFound(err) {
			return models.Order{}, models.ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// Deliver submits the seller's work: a message plus an optional
// attachment, as one multipart request.
func (s *OrderService) Deliver(ctx context.Context, orderID int, message, attachmentName string, attachment io.Reader) (models.Delivery, error) {
	fields := map[string]string{"message": message}
	var files []api.File
	if attachment != nil {
		files = append(files, api.File{Field: "attachment", Name: attachmentName, Content: attachment})
	}
	var delivery models.Delivery
	err := s.API.PostMultipart(ctx, "/orders/"+itoa(orderID)+"/deliver", fields, files, &delivery)
	if err != nil {
		return models.Delivery{}, err
	}
	return delivery, nil
}

func (s *OrderService) RequestRevision(ctx context.Context, orderID int, reason string) error {
	body := models.RevisionRequest{OrderID: orderID, Reason: reason}
	return s.API.Post(ctx, "/orders/"+itoa(orderID)+"/revision", body, nil)
}

// Complete accepts the delivery and releases the escrow hold
// server-side.
func (s *OrderService) Complete(ctx context.Context, orderID int) (models.Order, error) {
	var order models.Order
	if err := s.API.Post(ctx, "/orders/"+itoa(orderID)+"/complete", nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, orderID int, reason string) error {
	body := map[string]string{"reason": reason}
	return s.API.Post(ctx, "/orders/"+itoa(orderID)+"/cancel", body, nil)
}

func (s *OrderService) LeaveReview(ctx context.Context, orderID int, rating float64, comment string) (models.Review, error) {
	body := map[string]interface{}{"rating": rating, "comment": comment}
	var review models.Review
	if err := s.API.Post(ctx, "/orders/"+itoa(orderID)+"/review", body, &review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}
