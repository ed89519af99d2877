package handler

import (
	"context"
	"time"

	"jobboard/domain"
)

// Repository is the slice of the posting store the views need.
type Repository interface {
	ListPositions(ctx context.Context) ([]domain.Position, error)
	NotifyEmails(ctx context.Context) ([]string, error)

	CreateJobPost(ctx context.Context, j *domain.JobPost) error
	ListJobPosts(ctx context.Context, today time.Time, limit, offset int) ([]domain.JobPost, error)
	CountJobPosts(ctx context.Context, today time.Time) (int, error)
	GetJobPost(ctx context.Context, id string) (domain.JobPost, error)

	CreateApplicantPost(ctx context.Context, a *domain.ApplicantPost) error
	ListApplicantPosts(ctx context.Context, today time.Time, limit, offset int) ([]domain.ApplicantPost, error)
	CountApplicantPosts(ctx context.Context, today time.Time) (int, error)
	GetApplicantPost(ctx context.Context, id string) (domain.ApplicantPost, error)
}

type Notifier interface {
	JobPosted(ctx context.Context, recipients []string, j domain.JobPost) error
	ApplicantPosted(ctx context.Context, recipients []string, a domain.ApplicantPost) error
}

type Settings struct {
	JobsOnIndex       int
	ApplicantsOnIndex int
	JobsPerPage       int
	ApplicantsPerPage int
	ExpireDays        int
}

type Handler struct {
	Store    Repository
	Notifier Notifier
	Settings Settings
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
