package stubapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskoraClient/internal/models"
)

func (s *Server) handleListGigs(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	userID := getIntParam(r, "user_id")

	s.mu.Lock()
	filtered := make([]models.Gig, 0, len(s.gigs))
	for _, g := range s.gigs {
		if userID > 0 && g.UserID != userID {
			continue
		}
		if userID == 0 && g.Status != models.GigStatusActive {
			continue
		}
		if q.Category != "" && g.Category != q.Category {
			continue
		}
		if q.PriceFrom > 0 && g.Price < q.PriceFrom {
			continue
		}
		if q.PriceTo > 0 && g.Price > q.PriceTo {
			continue
		}
		if q.Search != "" &&
			!strings.Contains(strings.ToLower(g.Title), q.Search) &&
			!strings.Contains(strings.ToLower(g.Description), q.Search) {
			continue
		}
		filtered = append(filtered, g)
	}
	s.mu.Unlock()

	switch q.Sort {
	case "price_asc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price_desc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "rating":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].UserRating > filtered[j].UserRating })
	}

	s.writeJSON(w, http.StatusOK, newEnvelope(filtered, q.Page, q.Limit))
}

func (s *Server) handleGetGig(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.gigs {
		if g.ID == id {
			s.writeJSON(w, http.StatusOK, g)
			return
		}
	}
	s.jsonError(w, "gig not found", http.StatusNotFound)
}

func (s *Server) handleCreateGig(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	deliveryDays, _ := strconv.Atoi(r.FormValue("delivery_days"))
	if r.FormValue("title") == "" {
		s.jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	coverURL := ""
	if _, header, err := r.FormFile("cover_image"); err == nil {
		coverURL = "/uploads/gigs/" + header.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, _ := s.findUser(callerID(r))
	gig := models.Gig{
		ID:            s.id(),
		UserID:        user.ID,
		UserName:      user.Name,
		UserRating:    user.ReviewRating,
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
		Price:         price,
		DeliveryDays:  deliveryDays,
		CoverImageURL: coverURL,
		Status:        models.GigStatusActive,
		CreatedAt:     time.Now().UTC(),
	}
	s.gigs = append(s.gigs, gig)
	s.writeJSON(w, http.StatusCreated, gig)
}

func (s *Server) handleUpdateGig(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	var input models.GigInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.gigs {
		if s.gigs[i].ID != id {
			continue
		}
		if s.gigs[i].UserID != callerID(r) {
			s.jsonError(w, "forbidden", http.StatusForbidden)
			return
		}
		s.gigs[i].Title = input.Title
		s.gigs[i].Description = input.Description
		s.gigs[i].Category = input.Category
		s.gigs[i].Price = input.Price
		s.gigs[i].DeliveryDays = input.DeliveryDays
		now := time.Now().UTC()
		s.gigs[i].UpdatedAt = &now
		s.writeJSON(w, http.StatusOK, s.gigs[i])
		return
	}
	s.jsonError(w, "gig not found", http.StatusNotFound)
}

func (s *Server) handleGigStatus(w http.ResponseWriter, r *http.Request) {
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

	for i := range s.gigs {
		if s.gigs[i].ID == id {
			s.gigs[i].Status = body.Status
			s.writeJSON(w, http.StatusOK, s.gigs[i])
			return
		}
	}
	s.jsonError(w, "gig not found", http.StatusNotFound)
}

func (s *Server) handleDeleteGig(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.gigs {
		if s.gigs[i].ID == id {
			s.gigs = append(s.gigs[:i], s.gigs[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.jsonError(w, "gig not found", http.StatusNotFound)
}
