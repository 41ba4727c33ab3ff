package usecase

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

// recentItems is how many recent entries dashboards show
const recentItems = 5

type dashboardUsecase struct {
	userRepo   domain.UserRepository
	seekerRepo domain.SeekerProfileRepository
	jobRepo    domain.JobRepository
	appRepo    domain.ApplicationRepository
}

func NewDashboardUsecase(userRepo domain.UserRepository, seekerRepo domain.SeekerProfileRepository, jobRepo domain.JobRepository, appRepo domain.ApplicationRepository) domain.DashboardUsecase {
	return &dashboardUsecase{
		userRepo:   userRepo,
		seekerRepo: seekerRepo,
		jobRepo:    jobRepo,
		appRepo:    appRepo,
	}
}

// SeekerDashboard aggregates live counts; nothing here is cached or
// denormalized, so the numbers always reflect the current rows.
func (u *dashboardUsecase) SeekerDashboard(ctx context.Context, seekerID string) (*domain.SeekerDashboard, error) {
	d := &domain.SeekerDashboard{}

	var err error
	if d.TotalApplications, err = u.appRepo.CountBySeeker(ctx, seekerID, nil); err != nil {
		return nil, apperror.Internal(err)
	}

	active := []string{
		domain.StatusApplied, domain.StatusUnderReview, domain.StatusShortlisted,
		domain.StatusInterviewScheduled, domain.StatusInterviewed, domain.StatusOffered,
	}
	if d.ActiveApplications, err = u.appRepo.CountBySeeker(ctx, seekerID, active); err != nil {
		return nil, apperror.Internal(err)
	}

	interviews := []string{domain.StatusInterviewScheduled, domain.StatusInterviewed}
	if d.Interviews, err = u.appRepo.CountBySeeker(ctx, seekerID, interviews); err != nil {
		return nil, apperror.Internal(err)
	}

	offers := []string{domain.StatusOffered, domain.StatusHired}
	if d.Offers, err = u.appRepo.CountBySeeker(ctx, seekerID, offers); err != nil {
		return nil, apperror.Internal(err)
	}

	profile, err := u.seekerRepo.GetByUserID(ctx, seekerID)
	if err == nil {
		d.ProfileCompleteness = profile.ProfileCompleteness
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	if d.RecentApplications, err = u.appRepo.RecentBySeeker(ctx, seekerID, recentItems); err != nil {
		return nil, apperror.Internal(err)
	}
	if d.RecentApplications == nil {
		d.RecentApplications = []domain.Application{}
	}

	return d, nil
}

func (u *dashboardUsecase) ProviderDashboard(ctx context.Context, providerID string) (*domain.ProviderDashboard, error) {
	d := &domain.ProviderDashboard{}

	var err error
	if d.TotalJobs, d.ActiveJobs, err = u.jobRepo.CountByProvider(ctx, providerID); err != nil {
		return nil, apperror.Internal(err)
	}
	if d.TotalApplications, err = u.appRepo.CountByProvider(ctx, providerID, nil); err != nil {
		return nil, apperror.Internal(err)
	}

	pending := []string{domain.StatusApplied, domain.StatusUnderReview}
	if d.PendingApplications, err = u.appRepo.CountByProvider(ctx, providerID, pending); err != nil {
		return nil, apperror.Internal(err)
	}

	if d.RecentApplications, err = u.appRepo.RecentByProvider(ctx, providerID, recentItems); err != nil {
		return nil, apperror.Internal(err)
	}
	if d.RecentApplications == nil {
		d.RecentApplications = []domain.Application{}
	}

	if d.TopJobs, err = u.jobRepo.TopByApplications(ctx, providerID, recentItems); err != nil {
		return nil, apperror.Internal(err)
	}
	if d.TopJobs == nil {
		d.TopJobs = []domain.Job{}
	}

	return d, nil
}

func (u *dashboardUsecase) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	s := &domain.AdminStats{}

	counts, err := u.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.UsersByRole = counts
	for _, n := range counts {
		s.TotalUsers += n
	}

	_, total, err := u.jobRepo.FetchForModeration(ctx, "", 1, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.TotalJobs = total

	_, activeTotal, err := u.jobRepo.FetchForModeration(ctx, domain.JobStatusActive, 1, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.ActiveJobs = activeTotal

	if s.TotalApplications, err = u.appRepo.CountAll(ctx); err != nil {
		return nil, apperror.Internal(err)
	}

	return s, nil
}
