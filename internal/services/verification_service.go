package services

import (
	"context"
	"time"

	"taskoraClient/internal/api"
	"taskoraClient/internal/models"
)

type VerificationService struct {
	API *api.Client
}

func (s *VerificationService) Current(ctx context.Context) (models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := s.API.Get(ctx, "/verification", nil, &req); err != nil {
		return models.VerificationRequest{}, err
	}
	return req, nil
}

// SubmitDocuments uploads the identity documents that start the
// verification workflow.
func (s *VerificationService) SubmitDocuments(ctx context.Context, files []api.File) (models.VerificationRequest, error) {
	if len(files) == 0 {
		return models.VerificationRequest{}, models.ErrEmptyField
	}
	var req models.VerificationRequest
	if err := s.API.PostMultipart(ctx, "/verification/documents", nil, files, &req); err != nil {
		return models.VerificationRequest{}, err
	}
	return req, nil
}

func (s *VerificationService) SubmitSkillTest(ctx context.Context, submission models.SkillTestSubmission) (models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := s.API.Post(ctx, "/verification/skill_test", submission, &req); err != nil {
		return models.VerificationRequest{}, err
	}
	return req, nil
}

func (s *VerificationService) RequestInterview(ctx context.Context, preferredAt time.Time) (models.VerificationRequest, error) {
	body := models.InterviewSlotRequest{PreferredAt: preferredAt}
	var req models.VerificationRequest
	if err := s.API.Post(ctx, "/verification/interview", body, &req); err != nil {
		return models.VerificationRequest{}, err
	}
	return req, nil
}
