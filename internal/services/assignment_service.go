package services

import (
	"context"
	"io"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type AssignmentService struct {
	API *api.Client
}

func (s *AssignmentService) Search(ctx context.Context, f listview.Filter) (listview.Page[models.Assignment], error) {
	var page listview.Page[models.Assignment]
	if err := s.API.Get(ctx, "/assignments", f.Values(), &page); err != nil {
		return listview.Page[models.Assignment]{}, err
	}
	return page, nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id int) (models.Assignment, error) {
	var assignment models.Assignment
	if err := s.API.Get(ctx, "/assignments/"+itoa(id), nil, &assignment); err != nil {
		if api.IsNotFound(err) {
			return models.Assignment{}, models.ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (s *AssignmentService) Create(ctx context.Context, input models.AssignmentInput) (models.Assignment, error) {
	var assignment models.Assignment
	if err := s.API.Post(ctx, "/assignments", input, &assignment); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (s *AssignmentService) Close(ctx context.Context, id int) error {
	body := map[string]string{"status": models.AssignmentStatusClosed}
	return s.API.Put(ctx, "/assignments/"+itoa(id)+"/status", body, nil)
}

type JobService struct {
	API *api.Client
}

func (s *JobService) Search(ctx context.Context, f listview.Filter) (listview.Page[models.Job], error) {
	var page listview.Page[models.Job]
	if err := s.API.Get(ctx, "/jobs", f.Values(), &page); err != nil {
		return listview.Page[models.Job]{}, err
	}
	return page, nil
}

func (s *JobService) GetByID(ctx context.Context, id int) (models.Job, error) {
	var job models.Job
	if err := s.API.Get(ctx, "/jobs/"+itoa(id), nil, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func (s *JobService) Create(ctx context.Context, input models.JobInput) (models.Job, error) {
	var job models.Job
	if err := s.API.Post(ctx, "/jobs", input, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// Apply submits a cover letter with the resume attached as a multipart
// file.
func (s *JobService) Apply(ctx context.Context, jobID int, coverLetter, resumeName string, resume io.Reader) (models.JobApplication, error) {
	fields := map[string]string{"cover_letter": coverLetter}
	var files []api.File
	if resume != nil {
		files = append(files, api.File{Field: "resume", Name: resumeName, Content: resume})
	}
	var application models.JobApplication
	err := s.API.PostMultipart(ctx, "/jobs/"+itoa(jobID)+"/apply", fields, files, &application)
	if err != nil {
		return models.JobApplication{}, err
	}
	return application, nil
}
