package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskoraClient/internal/models"
)

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wallet, ok := s.wallets[callerID(r)]
	s.mu.Unlock()

	if !ok {
		s.jsonError(w, "wallet not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, wallet)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	caller := callerID(r)

	s.mu.Lock()
	mine := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID == caller {
			mine = append(mine, t)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(mine, q.Page, q.Limit))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	caller := callerID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet := s.wallets[caller]
	if req.Amount <= 0 || req.Amount > wallet.Balance {
		s.jsonError(w, "invalid withdrawal amount", http.StatusBadRequest)
		return
	}
	wallet.Balance -= req.Amount
	s.wallets[caller] = wallet

	tx := models.Transaction{
		ID:        s.id(),
		UserID:    caller,
		Type:      models.TransactionWithdrawal,
		Amount:    -req.Amount,
		Comment:   "to " + req.BankAccount,
		CreatedAt: time.Now().UTC(),
	}
	s.transactions = append(s.transactions, tx)
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleTopUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		s.jsonError(w, "invalid amount", http.StatusBadRequest)
		return
	}
	if _, _, err := r.FormFile("receipt"); err != nil {
		s.jsonError(w, "receipt file is required", http.StatusBadRequest)
		return
	}
	caller := callerID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet := s.wallets[caller]
	wallet.Balance += amount
	s.wallets[caller] = wallet

	tx := models.Transaction{
		ID:        s.id(),
		UserID:    caller,
		Type:      models.TransactionTopUp,
		Amount:    amount,
		Comment:   "bank transfer receipt",
		CreatedAt: time.Now().UTC(),
	}
	s.transactions = append(s.transactions, tx)
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleVerification(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	req, ok := s.verifications[callerID(r)]
	s.mu.Unlock()

	if !ok {
		s.jsonError(w, "no verification request", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleVerificationDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}
	caller := callerID(r)

	urls := []string{}
	if r.MultipartForm != nil {
		for _, headers := range r.MultipartForm.File {
			for _, h := range headers {
				urls = append(urls, "/uploads/verification/"+h.Filename)
			}
		}
	}
	if len(urls) == 0 {
		s.jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req := models.VerificationRequest{
		ID:           s.id(),
		UserID:       caller,
		Step:         models.VerificationStepDocuments,
		Status:       models.VerificationStatusPending,
		DocumentURLs: urls,
		CreatedAt:    time.Now().UTC(),
	}
	s.verifications[caller] = req
	s.writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleSkillTest(w http.ResponseWriter, r *http.Request) {
	var submission models.SkillTestSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	caller := callerID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.verifications[caller]
	if !ok {
		s.jsonError(w, "submit documents first", http.StatusConflict)
		return
	}
	score := len(submission.Answers) * 10
	now := time.Now().UTC()
	req.Step = models.VerificationStepSkillTest
	req.Status = models.VerificationStatusPending
	req.TestScore = &score
	req.UpdatedAt = &now
	s.verifications[caller] = req
	s.writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	var body models.InterviewSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	caller := callerID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.verifications[caller]
	if !ok {
		s.jsonError(w, "submit documents first", http.StatusConflict)
		return
	}
	now := time.Now().UTC()
	req.Step = models.VerificationStepInterview
	req.InterviewAt = &body.PreferredAt
	req.UpdatedAt = &now
	s.verifications[caller] = req
	s.writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	s.mu.Lock()
	users := append([]models.User(nil), s.users...)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(users, q.Page, q.Limit))
}

func (s *Server) handleBan(w http.ResponseWriter, r *http.Request) {
	s.setBanned(w, r, true)
}

func (s *Server) handleUnban(w http.ResponseWriter, r *http.Request) {
	s.setBanned(w, r, false)
}

func (s *Server) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Banned = banned
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "user not found", http.StatusNotFound)
}

func (s *Server) handleAdminVerifications(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	s.mu.Lock()
	pending := make([]models.VerificationRequest, 0, len(s.verifications))
	for _, v := range s.verifications {
		if v.Status == models.VerificationStatusPending {
			pending = append(pending, v)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(pending, q.Page, q.Limit))
}

func (s *Server) handleReviewVerification(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	var body struct {
		Status  string `json:"status"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, v := range s.verifications {
		if v.ID != id {
			continue
		}
		now := time.Now().UTC()
		v.Status = body.Status
		v.Comment = body.Comment
		v.UpdatedAt = &now
		s.verifications[userID] = v

		if body.Status == models.VerificationStatusApproved && v.Step == models.VerificationStepInterview {
			for i := range s.users {
				if s.users[i].ID == userID {
					s.users[i].Verified = true
				}
			}
		}
		s.notify(userID, models.NotificationSystem, "Verification "+body.Status, v.ID)
		s.writeJSON(w, http.StatusOK, v)
		return
	}
	s.jsonError(w, "verification not found", http.StatusNotFound)
}

// notify appends an in-app notification; callers hold s.mu.
func (s *Server) notify(userID int, kind, title string, entityID int) {
	s.notifications = append(s.notifications, models.Notification{
		ID:        s.id(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	})
}
