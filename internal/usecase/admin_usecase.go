package usecase

import (
	"context"
	"errors"
	"strings"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

type adminUsecase struct {
	providerRepo domain.ProviderProfileRepository
	jobRepo      domain.JobRepository
}

func NewAdminUsecase(providerRepo domain.ProviderProfileRepository, jobRepo domain.JobRepository) domain.AdminUsecase {
	return &adminUsecase{
		providerRepo: providerRepo,
		jobRepo:      jobRepo,
	}
}

func (u *adminUsecase) VerifyProvider(ctx context.Context, profileID int64, verified bool) error {
	if err := u.providerRepo.SetVerified(ctx, profileID, verified); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Provider profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *adminUsecase) ListJobsForModeration(ctx context.Context, status string, page, limit int) ([]domain.Job, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	jobs, total, err := u.jobRepo.FetchForModeration(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return jobs, domain.NewPagination(page, limit, total), nil
}

func (u *adminUsecase) ApproveJob(ctx context.Context, adminID, jobID string) error {
	if err := u.jobRepo.SetApproval(ctx, jobID, true, adminID, ""); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *adminUsecase) RejectJob(ctx context.Context, adminID, jobID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperror.BadRequest("Rejection reason is required")
	}
	if err := u.jobRepo.SetApproval(ctx, jobID, false, adminID, reason); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *adminUsecase) FlagJob(ctx context.Context, jobID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperror.BadRequest("Flag reason is required")
	}
	if err := u.jobRepo.SetFlag(ctx, jobID, true, reason); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *adminUsecase) UnflagJob(ctx context.Context, jobID string) error {
	if err := u.jobRepo.SetFlag(ctx, jobID, false, ""); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
