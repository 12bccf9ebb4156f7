package stubapi

import (
	"encoding/json"
	"net/http"
	"time"

	"taskoraClient/internal/models"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GigID          int    `json:"gig_id"`
		IdempotencyKey string `json:"idempotency_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A retried submit with the same key gets the original order back
	// instead of a second charge.
	if body.IdempotencyKey != "" {
		if orderID, seen := s.orderKeys[body.IdempotencyKey]; seen {
			for _, o := range s.orders {
				if o.ID == orderID {
					s.writeJSON(w, http.StatusOK, o)
					return
				}
			}
		}
	}

	var gig models.Gig
	found := false
	for _, g := range s.gigs {
		if g.ID == body.GigID {
			gig = g
			found = true
			break
		}
	}
	if !found {
		s.jsonError(w, "gig not found", http.StatusNotFound)
		return
	}

	buyer := callerID(r)
	wallet := s.wallets[buyer]
	if wallet.Balance < gig.Price {
		s.jsonError(w, "insufficient balance", http.StatusPaymentRequired)
		return
	}

	due := time.Now().UTC().AddDate(0, 0, gig.DeliveryDays)
	order := models.Order{
		ID:        s.id(),
		GigID:     gig.ID,
		BuyerID:   buyer,
		SellerID:  gig.UserID,
		Title:     gig.Title,
		Price:     gig.Price,
		Status:    models.OrderStatusActive,
		DueAt:     &due,
		CreatedAt: time.Now().UTC(),
	}
	s.orders = append(s.orders, order)
	if body.IdempotencyKey != "" {
		s.orderKeys[body.IdempotencyKey] = order.ID
	}
	s.holdEscrow(buyer, order.ID, gig.Price)
	s.notify(gig.UserID, models.NotificationNewOrder, "New order: "+gig.Title, order.ID)
	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	caller := callerID(r)
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	mine := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.BuyerID != caller && o.SellerID != caller {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		mine = append(mine, o)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(mine, q.Page, q.Limit))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			s.writeJSON(w, http.StatusOK, o)
			return
		}
	}
	s.jsonError(w, "order not found", http.StatusNotFound)
}

func (s *Server) handleDeliver(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	attachmentURL := ""
	if _, header, err := r.FormFile("attachment"); err == nil {
		attachmentURL = "/uploads/deliveries/" + header.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].SellerID != callerID(r) {
			s.jsonError(w, "forbidden", http.StatusForbidden)
			return
		}
		now := time.Now().UTC()
		s.orders[i].Status = models.OrderStatusDelivered
		s.orders[i].DeliveredAt = &now

		delivery := models.Delivery{
			ID:            s.id(),
			OrderID:       id,
			Message:       r.FormValue("message"),
			AttachmentURL: attachmentURL,
			CreatedAt:     now,
		}
		s.notify(s.orders[i].BuyerID, models.NotificationDelivery, "Delivery for: "+s.orders[i].Title, id)
		s.writeJSON(w, http.StatusCreated, delivery)
		return
	}
	s.jsonError(w, "order not found", http.StatusNotFound)
}

func (s *Server) handleRevision(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	var req models.RevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = models.OrderStatusRevision
			s.notify(s.orders[i].SellerID, models.NotificationSystem, "Revision requested: "+req.Reason, id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "order not found", http.StatusNotFound)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].BuyerID != callerID(r) {
			s.jsonError(w, "forbidden", http.StatusForbidden)
			return
		}
		now := time.Now().UTC()
		s.orders[i].Status = models.OrderStatusCompleted
		s.orders[i].CompletedAt = &now
		s.releaseEscrow(s.orders[i])
		s.writeJSON(w, http.StatusOK, s.orders[i])
		return
	}
	s.jsonError(w, "order not found", http.StatusNotFound)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = models.OrderStatusCancelled
			s.refundEscrow(s.orders[i])
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "order not found", http.StatusNotFound)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	var body struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review := models.Review{
		ID:        s.id(),
		OrderID:   id,
		UserID:    callerID(r),
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now().UTC(),
	}
	s.writeJSON(w, http.StatusCreated, review)
}

func (s *Server) holdEscrow(buyerID, orderID int, amount float64) {
	wallet := s.wallets[buyerID]
	wallet.Balance -= amount
	wallet.EscrowBalance += amount
	s.wallets[buyerID] = wallet
	s.transactions = append(s.transactions, models.Transaction{
		ID: s.id(), UserID: buyerID, OrderID: orderID,
		Type: models.TransactionEscrowHold, Amount: -amount, CreatedAt: time.Now().UTC(),
	})
}

func (s *Server) releaseEscrow(order models.Order) {
	buyer := s.wallets[order.BuyerID]
	buyer.EscrowBalance -= order.Price
	s.wallets[order.BuyerID] = buyer

	seller := s.wallets[order.SellerID]
	seller.Balance += order.Price
	s.wallets[order.SellerID] = seller

	s.transactions = append(s.transactions, models.Transaction{
		ID: s.id(), UserID: order.SellerID, OrderID: order.ID,
		Type: models.TransactionRelease, Amount: order.Price, CreatedAt: time.Now().UTC(),
	})
}

func (s *Server) refundEscrow(order models.Order) {
	buyer := s.wallets[order.BuyerID]
	buyer.EscrowBalance -= order.Price
	buyer.Balance += order.Price
	s.wallets[order.BuyerID] = buyer

	s.transactions = append(s.transactions, models.Transaction{
		ID: s.id(), UserID: order.BuyerID, OrderID: order.ID,
		Type: models.TransactionRefund, Amount: order.Price, CreatedAt: time.Now().UTC(),
	})
}
