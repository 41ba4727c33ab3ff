package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/upload"
)

type seekerProfileUsecase struct {
	profileRepo domain.SeekerProfileRepository
	storage     domain.FileStorage
}

func NewSeekerProfileUsecase(profileRepo domain.SeekerProfileRepository, storage domain.FileStorage) domain.SeekerProfileUsecase {
	return &seekerProfileUsecase{
		profileRepo: profileRepo,
		storage:     storage,
	}
}

// CreateOrUpdate merges the supplied sections into the stored profile,
// replaces the resume blob when a new file is attached and recomputes the
// completeness score. Nil input sections leave stored values untouched.
func (u *seekerProfileUsecase) CreateOrUpdate(ctx context.Context, userID string, input *domain.SeekerProfileInput, resume *domain.UploadFile) (*domain.JobSeekerProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		profile = &domain.JobSeekerProfile{UserID: userID}
	}

	if input != nil {
		if input.PersonalInfo != nil {
			profile.PersonalInfo = *input.PersonalInfo
		}
		if input.ProfessionalInfo != nil {
			profile.ProfessionalInfo = *input.ProfessionalInfo
		}
		if input.WorkExperience != nil {
			profile.WorkExperience = input.WorkExperience
		}
		if input.Education != nil {
			profile.Education = input.Education
		}
		if input.Portfolio != nil {
			profile.Portfolio = *input.Portfolio
		}
	}

	// Replacement is upload-then-delete: the new blob must be stored and the
	// row persisted before the old blob is touched, so a failure midway never
	// leaves the profile pointing at nothing.
	var oldResumeKey string
	if resume != nil {
		result := upload.Validate(resume.Filename, resume.Data, upload.ResumeExtensions)
		if !result.Valid {
			return nil, apperror.BadRequest(result.Error)
		}

		ref, err := u.storage.Upload(ctx, "resumes", resume.Filename, upload.ContentTypeFor(result.Extension), resume.Data)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile.Resume != nil {
			oldResumeKey = profile.Resume.Key
		}
		profile.Resume = ref
	}

	profile.CalculateCompleteness()

	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		if resume != nil {
			if delErr := u.storage.Delete(ctx, profile.Resume.Key); delErr != nil {
				slog.Warn("failed to clean up orphaned resume upload", "key", profile.Resume.Key, "error", delErr)
			}
		}
		return nil, apperror.Internal(err)
	}

	if oldResumeKey != "" {
		if err := u.storage.Delete(ctx, oldResumeKey); err != nil {
			slog.Warn("failed to delete replaced resume", "key", oldResumeKey, "error", err)
		}
	}

	return profile, nil
}

func (u *seekerProfileUsecase) GetProfile(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}
