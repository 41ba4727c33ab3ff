package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type seekerProfileRepo struct {
	db *pgxpool.Pool
}

func NewSeekerProfileRepository(db *pgxpool.Pool) domain.SeekerProfileRepository {
	return &seekerProfileRepo{db: db}
}

func (r *seekerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	query := `SELECT id, user_id, personal_info, professional_info, work_experience,
	                 education, resume, portfolio, profile_completeness, created_at, updated_at
	          FROM job_seeker_profiles WHERE user_id = $1`

	var p domain.JobSeekerProfile
	var personal, professional, work, education, portfolio []byte
	var resume []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &personal, &professional, &work,
		&education, &resume, &portfolio, &p.ProfileCompleteness,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(personal, &p.PersonalInfo); err != nil {
		return nil, fmt.Errorf("failed to decode personal_info: %w", err)
	}
	if err := json.Unmarshal(professional, &p.ProfessionalInfo); err != nil {
		return nil, fmt.Errorf("failed to decode professional_info: %w", err)
	}
	if err := json.Unmarshal(work, &p.WorkExperience); err != nil {
		return nil, fmt.Errorf("failed to decode work_experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	if err := json.Unmarshal(portfolio, &p.Portfolio); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio: %w", err)
	}
	if len(resume) > 0 {
		if err := json.Unmarshal(resume, &p.Resume); err != nil {
			return nil, fmt.Errorf("failed to decode resume: %w", err)
		}
	}

	return &p, nil
}

func (r *seekerProfileRepo) Upsert(ctx context.Context, profile *domain.JobSeekerProfile) error {
	personal, err := json.Marshal(profile.PersonalInfo)
	if err != nil {
		return err
	}
	professional, err := json.Marshal(profile.ProfessionalInfo)
	if err != nil {
		return err
	}
	work, err := json.Marshal(coalesceSlice(profile.WorkExperience))
	if err != nil {
		return err
	}
	education, err := json.Marshal(coalesceSlice(profile.Education))
	if err != nil {
		return err
	}
	portfolio, err := json.Marshal(profile.Portfolio)
	if err != nil {
		return err
	}
	var resume []byte
	if profile.Resume != nil {
		resume, err = json.Marshal(profile.Resume)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO job_seeker_profiles (
			user_id, personal_info, professional_info, work_experience,
			education, resume, portfolio, skills, profile_completeness
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			personal_info = EXCLUDED.personal_info,
			professional_info = EXCLUDED.professional_info,
			work_experience = EXCLUDED.work_experience,
			education = EXCLUDED.education,
			resume = EXCLUDED.resume,
			portfolio = EXCLUDED.portfolio,
			skills = EXCLUDED.skills,
			profile_completeness = EXCLUDED.profile_completeness,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		profile.UserID, personal, professional, work,
		education, resume, portfolio, pq.Array(profile.ProfessionalInfo.Skills),
		profile.ProfileCompleteness,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

// coalesceSlice keeps empty sections stored as [] instead of null
func coalesceSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
