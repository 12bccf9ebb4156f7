package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"taskoraClient/internal/api"
	"taskoraClient/internal/models"
	"taskoraClient/internal/session"
)

type AuthService struct {
	API     *api.Client
	Session *session.Store
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return models.User{}, models.ErrEmptyField
	}
	var user models.User
	if err := s.API.Post(ctx, "/user/sign_up", req, &user); err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// SignIn authenticates and persists the session, so every later call
// picks the token up from storage.
func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return models.User{}, models.ErrEmptyField
	}
	var resp models.SignInResponse
	if err := s.API.Post(ctx, "/user/sign_in", req, &resp); err != nil {
		if api.IsUnauthorized(err) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := s.Session.Save(resp.AccessToken, resp.User); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (s *AuthService) SignOut(ctx context.Context) error {
	return s.Session.Clear()
}

// CurrentUser prefers the cached user and re-fetches when the cache is
// missing.
func (s *AuthService) CurrentUser(ctx context.Context) (models.User, error) {
	user, err := s.Session.CurrentUser()
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNoSession) {
		return models.User{}, err
	}
	var fetched models.User
	if err := s.API.Get(ctx, "/user/me", nil, &fetched); err != nil {
		return models.User{}, err
	}
	return fetched, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest) (models.User, error) {
	var user models.User
	if err := s.API.Put(ctx, userPath(userID), req, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) UploadAvatar(ctx context.Context, userID int, name string, content io.Reader) (models.User, error) {
	var user models.User
	err := s.API.PostMultipart(ctx, userPath(userID)+"/avatar", nil,
		[]api.File{{Field: "avatar", Name: name, Content: content}}, &user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func userPath(userID int) string {
	return "/user/" + itoa(userID)
}
