package stubapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskoraClient/internal/models"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	s.mu.Lock()
	filtered := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.Status != models.JobStatusOpen {
			continue
		}
		if q.Category != "" && j.Category != q.Category {
			continue
		}
		if q.PriceFrom > 0 && j.SalaryTo < q.PriceFrom {
			continue
		}
		if q.PriceTo > 0 && j.SalaryFrom > q.PriceTo {
			continue
		}
		if q.Search != "" &&
			!strings.Contains(strings.ToLower(j.Title), q.Search) &&
			!strings.Contains(strings.ToLower(j.Description), q.Search) {
			continue
		}
		filtered = append(filtered, j)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, newEnvelope(filtered, q.Page, q.Limit))
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.ID == id {
			s.writeJSON(w, http.StatusOK, j)
			return
		}
	}
	s.jsonError(w, "job not found", http.StatusNotFound)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var input models.JobInput
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
	job := models.Job{
		ID:          s.id(),
		UserID:      user.ID,
		CompanyName: user.Name,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Skills:      input.Skills,
		SalaryFrom:  input.SalaryFrom,
		SalaryTo:    input.SalaryTo,
		Location:    input.Location,
		Remote:      input.Remote,
		Status:      models.JobStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	s.jobs = append(s.jobs, job)
	s.writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleApplyJob(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	resumeURL := ""
	if _, header, err := r.FormFile("resume"); err == nil {
		resumeURL = "/uploads/resumes/" + header.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.ID != id {
			continue
		}
		if j.Status != models.JobStatusOpen {
			s.jsonError(w, "job is not open", http.StatusConflict)
			return
		}
		application := models.JobApplication{
			ID:          s.id(),
			JobID:       id,
			UserID:      callerID(r),
			CoverLetter: r.FormValue("cover_letter"),
			ResumeURL:   resumeURL,
			CreatedAt:   time.Now().UTC(),
		}
		s.applications = append(s.applications, application)
		s.notify(j.UserID, models.NotificationSystem, "New application: "+j.Title, id)
		s.writeJSON(w, http.StatusCreated, application)
		return
	}
	s.jsonError(w, "job not found", http.StatusNotFound)
}
