package stubapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskoraClient/internal/models"
)

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	s.mu.Lock()
	filtered := make([]models.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		if q.PriceFrom > 0 && a.BudgetTo < q.PriceFrom {
			continue
		}
		if q.PriceTo > 0 && a.BudgetFrom > q.PriceTo {
			continue
		}
		if q.Search != "" &&
			!strings.Contains(strings.ToLower(a.Title), q.Search) &&
			!strings.Contains(strings.ToLower(a.Description), q.Search) {
			continue
		}
		filtered = append(filtered, a)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(filtered, q.Page, q.Limit))
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.assignments {
		if a.ID == id {
			s.writeJSON(w, http.StatusOK, a)
			return
		}
	}
	s.jsonError(w, "assignment not found", http.StatusNotFound)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var input models.AssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		s.jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.findUser(callerID(r))
	assignment := models.Assignment{
		ID:          s.id(),
		UserID:      user.ID,
		UserName:    user.Name,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Skills:      input.Skills,
		BudgetFrom:  input.BudgetFrom,
		BudgetTo:    input.BudgetTo,
		Status:      models.AssignmentStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if input.DurationDays > 0 {
		deadline := time.Now().UTC().AddDate(0, 0, input.DurationDays)
		assignment.Deadline = &deadline
	}
	s.assignments = append(s.assignments, assignment)
	s.writeJSON(w, http.StatusCreated, assignment)
}

func (s *Server) handleAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.assignments[i].Status = body.Status
			s.writeJSON(w, http.StatusOK, s.assignments[i])
			return
		}
	}
	s.jsonError(w, "assignment not found", http.StatusNotFound)
}

func (s *Server) handleAssignmentBids(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	bids := make([]models.Bid, 0)
	for _, b := range s.bids {
		if b.AssignmentID == id {
			bids = append(bids, b)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope[models.Bid]{Results: bids, Total: len(bids)})
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	var input models.BidInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.assignments {
		if s.assignments[i].ID == input.AssignmentID {
			if s.assignments[i].Status != models.AssignmentStatusOpen {
				s.jsonError(w, "assignment is not open", http.StatusConflict)
				return
			}
			s.assignments[i].BidsCount++
			found = true
			break
		}
	}
	if !found {
		s.jsonError(w, "assignment not found", http.StatusNotFound)
		return
	}

	user, _ := s.findUser(callerID(r))
	bid := models.Bid{
		ID:           s.id(),
		AssignmentID: input.AssignmentID,
		UserID:       user.ID,
		UserName:     user.Name,
		UserRating:   user.ReviewRating,
		Amount:       input.Amount,
		DurationDays: input.DurationDays,
		CoverMessage: input.CoverMessage,
		Status:       models.BidStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	s.bids = append(s.bids, bid)
	s.writeJSON(w, http.StatusCreated, bid)
}

func (s *Server) handleMyBids(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	caller := callerID(r)

	s.mu.Lock()
	mine := make([]models.Bid, 0)
	for _, b := range s.bids {
		if b.UserID == caller {
			mine = append(mine, b)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(mine, q.Page, q.Limit))
}

func (s *Server) handleAcceptBid(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bids {
		if s.bids[i].ID != id {
			continue
		}
		s.bids[i].Status = models.BidStatusAccepted

		var assignment models.Assignment
		for j := range s.assignments {
			if s.assignments[j].ID == s.bids[i].AssignmentID {
				s.assignments[j].Status = models.AssignmentStatusInProgress
				assignment = s.assignments[j]
			}
		}

		order := models.Order{
			ID:           s.id(),
			AssignmentID: assignment.ID,
			BuyerID:      assignment.UserID,
			SellerID:     s.bids[i].UserID,
			Title:        assignment.Title,
			Price:        s.bids[i].Amount,
			Status:       models.OrderStatusActive,
			CreatedAt:    time.Now().UTC(),
		}
		s.orders = append(s.orders, order)
		s.holdEscrow(order.BuyerID, order.ID, order.Price)
		s.notify(order.SellerID, models.NotificationNewOrder, "Your bid was accepted", order.ID)
		s.writeJSON(w, http.StatusCreated, order)
		return
	}
	s.jsonError(w, "bid not found", http.StatusNotFound)
}

func (s *Server) handleRejectBid(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bids {
		if s.bids[i].ID == id {
			s.bids[i].Status = models.BidStatusRejected
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "bid not found", http.StatusNotFound)
}

func (s *Server) handleWithdrawBid(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bids {
		if s.bids[i].ID == id {
			if s.bids[i].UserID != callerID(r) {
				s.jsonError(w, "forbidden", http.StatusForbidden)
				return
			}
			s.bids = append(s.bids[:i], s.bids[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "bid not found", http.StatusNotFound)
}
