package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/upload"
)

type providerProfileUsecase struct {
	profileRepo domain.ProviderProfileRepository
	storage     domain.FileStorage
}

func NewProviderProfileUsecase(profileRepo domain.ProviderProfileRepository, storage domain.FileStorage) domain.ProviderProfileUsecase {
	return &providerProfileUsecase{
		profileRepo: profileRepo,
		storage:     storage,
	}
}

// CreateOrUpdate merges the supplied sections into the stored profile and
// replaces the company logo when a new image is attached. Logos are normalized
// to a square JPEG before upload. Verification flags never come from the
// client; admins set them through their own endpoint.
func (u *providerProfileUsecase) CreateOrUpdate(ctx context.Context, userID string, input *domain.ProviderProfileInput, logo *domain.UploadFile) (*domain.JobProviderProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		profile = &domain.JobProviderProfile{UserID: userID}
	}

	if input != nil {
		if input.CompanyInfo != nil {
			profile.CompanyInfo = *input.CompanyInfo
		}
		if input.ContactInfo != nil {
			profile.ContactInfo = *input.ContactInfo
		}
		if input.Verification != nil {
			profile.Verification.BusinessEmail = input.Verification.BusinessEmail
			profile.Verification.GSTIN = input.Verification.GSTIN
		}
	}

	var oldLogoKey string
	if logo != nil {
		result := upload.Validate(logo.Filename, logo.Data, upload.LogoExtensions)
		if !result.Valid {
			return nil, apperror.BadRequest(result.Error)
		}

		normalized, err := upload.NormalizeLogo(logo.Data)
		if err != nil {
			return nil, apperror.BadRequest("Logo image could not be processed")
		}

		ref, err := u.storage.Upload(ctx, "logos", logo.Filename, "image/jpeg", normalized)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if profile.CompanyLogo != nil {
			oldLogoKey = profile.CompanyLogo.Key
		}
		profile.CompanyLogo = ref
	}

	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		if logo != nil {
			if delErr := u.storage.Delete(ctx, profile.CompanyLogo.Key); delErr != nil {
				slog.Warn("failed to clean up orphaned logo upload", "key", profile.CompanyLogo.Key, "error", delErr)
			}
		}
		return nil, apperror.Internal(err)
	}

	if oldLogoKey != "" {
		if err := u.storage.Delete(ctx, oldLogoKey); err != nil {
			slog.Warn("failed to delete replaced logo", "key", oldLogoKey, "error", err)
		}
	}

	return profile, nil
}

func (u *providerProfileUsecase) GetProfile(ctx context.Context, userID string) (*domain.JobProviderProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}
