package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// DefaultJobDuration is how long a posting stays live before it expires
const DefaultJobDuration = 30 * 24 * time.Hour

type jobUsecase struct {
	jobRepo      domain.JobRepository
	providerRepo domain.ProviderProfileRepository
	appRepo      domain.ApplicationRepository
	validate     *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, providerRepo domain.ProviderProfileRepository, appRepo domain.ApplicationRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		providerRepo: providerRepo,
		appRepo:      appRepo,
		validate:     validate,
	}
}

func (u *jobUsecase) validateJob(job *domain.Job) error {
	if err := u.validate.Struct(job.BasicInfo); err != nil {
		return apperror.BadRequest(fmt.Sprintf("Invalid job details: %v", err))
	}
	if err := u.validate.Struct(job.Description); err != nil {
		return apperror.BadRequest(fmt.Sprintf("Invalid job description: %v", err))
	}
	if err := u.validate.Struct(job.Location); err != nil {
		return apperror.BadRequest(fmt.Sprintf("Invalid job location: %v", err))
	}
	if err := u.validate.Struct(job.Compensation.SalaryRange); err != nil {
		return apperror.BadRequest(fmt.Sprintf("Invalid salary range: %v", err))
	}
	if len(job.Requirements.RequiredSkills) == 0 {
		return apperror.BadRequest("At least one required skill is needed")
	}
	return nil
}

// CreateJob posts a job on behalf of a verified provider. The posting quota is
// consumed inside the repository transaction; a concurrent post racing past
// the early CanPostJob check still fails cleanly there.
func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	profile, err := u.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Provider profile not found. Please create a company profile first.")
		}
		return apperror.Internal(err)
	}
	if !profile.Verification.IsVerified {
		return apperror.Forbidden("Provider account is not verified yet")
	}
	if !profile.CanPostJob() {
		return apperror.Forbidden("Job post limit reached for the current plan")
	}

	if err := u.validateJob(job); err != nil {
		return err
	}

	job.ProviderUserID = userID
	job.CompanyID = profile.ID
	if job.Status != domain.JobStatusDraft {
		job.Status = domain.JobStatusActive
	}
	job.Moderation = domain.Moderation{}
	job.Stats = domain.JobStats{}
	job.PostedAt = time.Now()
	expires := job.PostedAt.Add(DefaultJobDuration)
	job.ExpiresAt = &expires

	ok, err := u.jobRepo.Create(ctx, job)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.Forbidden("Job post limit reached for the current plan")
	}
	return nil
}

func (u *jobUsecase) GetMyJobs(ctx context.Context, userID, status string, page, limit int) ([]domain.Job, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	jobs, total, err := u.jobRepo.FetchByProvider(ctx, userID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return jobs, domain.NewPagination(page, limit, total), nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	existing, err := u.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if existing.ProviderUserID != userID {
		return apperror.Forbidden("You do not own this job")
	}
	if existing.Status == domain.JobStatusClosed || existing.Status == domain.JobStatusExpired {
		return apperror.BadRequest("Closed or expired jobs cannot be edited")
	}

	if err := u.validateJob(job); err != nil {
		return err
	}

	existing.BasicInfo = job.BasicInfo
	existing.Description = job.Description
	existing.Location = job.Location
	existing.Compensation = job.Compensation
	existing.Requirements = job.Requirements
	existing.ScreeningQuestions = job.ScreeningQuestions

	if err := u.jobRepo.Update(ctx, existing); err != nil {
		return apperror.Internal(err)
	}
	*job = *existing
	return nil
}

func (u *jobUsecase) ChangeJobStatus(ctx context.Context, userID, jobID, newStatus string) error {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if job.ProviderUserID != userID {
		return apperror.Forbidden("You do not own this job")
	}
	if !domain.CanTransitionJobStatus(job.Status, newStatus) {
		return apperror.BadRequest(fmt.Sprintf("Cannot change job status from %s to %s", job.Status, newStatus))
	}

	if err := u.jobRepo.UpdateStatus(ctx, job, newStatus); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("Job status changed concurrently, please retry")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) CloseJob(ctx context.Context, userID, jobID string) error {
	return u.ChangeJobStatus(ctx, userID, jobID, domain.JobStatusClosed)
}

// GetJobDetails returns a job for public/seeker viewing and reports whether
// the seeker has already applied. Every view bumps the counter.
func (u *jobUsecase) GetJobDetails(ctx context.Context, seekerID, jobID string) (*domain.Job, bool, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, apperror.NotFound("Job not found")
		}
		return nil, false, apperror.Internal(err)
	}

	if err := u.jobRepo.IncrementViews(ctx, jobID); err != nil {
		slog.Warn("failed to increment job views", "job_id", jobID, "error", err)
	} else {
		job.Stats.Views++
	}

	hasApplied := false
	if seekerID != "" {
		hasApplied, err = u.appRepo.Exists(ctx, jobID, seekerID)
		if err != nil {
			return nil, false, apperror.Internal(err)
		}
	}
	return job, hasApplied, nil
}

func (u *jobUsecase) SearchJobs(ctx context.Context, filter domain.JobSearchFilter, page, limit int) ([]domain.Job, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	jobs, total, err := u.jobRepo.Search(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return jobs, domain.NewPagination(page, limit, total), nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
