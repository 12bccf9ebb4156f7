package stubapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskoraClient/internal/models"
)

const tokenTTL = 12 * time.Hour

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		s.jsonError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.passwords[req.Email]; exists {
		s.jsonError(w, "email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	user := models.User{
		ID:        s.id(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.passwords[req.Email] = string(hash)
	s.wallets[user.ID] = models.Wallet{UserID: user.ID, Currency: "KZT"}

	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok := s.passwords[req.Email]
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		s.jsonError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	user, ok := s.findUserByEmail(req.Email)
	if !ok {
		s.jsonError(w, "user not found", http.StatusUnauthorized)
		return
	}
	if user.Banned {
		s.jsonError(w, "account is banned", http.StatusForbidden)
		return
	}

	token, err := s.tokens.NewJWT(user.ID, user.Role, tokenTTL)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, models.SignInResponse{AccessToken: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findUser(callerID(r))
	if !ok {
		s.jsonError(w, "user not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	if id <= 0 {
		s.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if req.Name != "" {
			s.users[i].Name = req.Name
		}
		if req.Surname != "" {
			s.users[i].Surname = req.Surname
		}
		if req.City != "" {
			s.users[i].City = req.City
		}
		if req.About != "" {
			s.users[i].About = req.About
		}
		if req.Skills != nil {
			s.users[i].Skills = req.Skills
		}
		now := time.Now().UTC()
		s.users[i].UpdatedAt = &now
		s.writeJSON(w, http.StatusOK, s.users[i])
		return
	}
	s.jsonError(w, "user not found", http.StatusNotFound)
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := getIntParam(r, "id")
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.jsonError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}
	_, header, err := r.FormFile("avatar")
	if err != nil {
		s.jsonError(w, "avatar file is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			path := "/uploads/avatars/" + header.Filename
			s.users[i].AvatarPath = &path
			s.writeJSON(w, http.StatusOK, s.users[i])
			return
		}
	}
	s.jsonError(w, "user not found", http.StatusNotFound)
}

func (s *Server) findUser(id int) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Server) findUserByEmail(email string) (models.User, bool) {
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}
