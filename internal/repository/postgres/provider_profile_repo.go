package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type providerProfileRepo struct {
	db *pgxpool.Pool
}

func NewProviderProfileRepository(db *pgxpool.Pool) domain.ProviderProfileRepository {
	return &providerProfileRepo{db: db}
}

const providerProfileColumns = `
	id, user_id, company_name, company_info, contact_info,
	business_email, gstin, is_verified, verified_at, company_logo,
	plan, job_posts_limit, job_posts_used, plan_expires_at,
	total_jobs_posted, total_hires, status, created_at, updated_at`

func (r *providerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobProviderProfile, error) {
	query := `SELECT` + providerProfileColumns + ` FROM job_provider_profiles WHERE user_id = $1`
	return r.scanProfile(ctx, r.db.QueryRow(ctx, query, userID))
}

func (r *providerProfileRepo) GetByID(ctx context.Context, id int64) (*domain.JobProviderProfile, error) {
	query := `SELECT` + providerProfileColumns + ` FROM job_provider_profiles WHERE id = $1`
	return r.scanProfile(ctx, r.db.QueryRow(ctx, query, id))
}

func (r *providerProfileRepo) scanProfile(ctx context.Context, row pgx.Row) (*domain.JobProviderProfile, error) {
	var p domain.JobProviderProfile
	var companyInfo, contactInfo []byte
	var logo []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyInfo.CompanyName, &companyInfo, &contactInfo,
		&p.Verification.BusinessEmail, &p.Verification.GSTIN, &p.Verification.IsVerified,
		&p.Verification.VerifiedAt, &logo,
		&p.Subscription.Plan, &p.Subscription.JobPostsLimit, &p.Subscription.JobPostsUsed,
		&p.Subscription.ExpiresAt,
		&p.Stats.TotalJobsPosted, &p.Stats.TotalHires, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	companyName := p.CompanyInfo.CompanyName
	if err := json.Unmarshal(companyInfo, &p.CompanyInfo); err != nil {
		return nil, fmt.Errorf("failed to decode company_info: %w", err)
	}
	// promoted column wins over the JSONB copy
	p.CompanyInfo.CompanyName = companyName

	if err := json.Unmarshal(contactInfo, &p.ContactInfo); err != nil {
		return nil, fmt.Errorf("failed to decode contact_info: %w", err)
	}
	if len(logo) > 0 {
		if err := json.Unmarshal(logo, &p.CompanyLogo); err != nil {
			return nil, fmt.Errorf("failed to decode company_logo: %w", err)
		}
	}

	// live counters derived from the jobs and applications tables
	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE provider_user_id = $1 AND status = 'Active'),
			(SELECT COUNT(*) FROM applications WHERE job_provider_id = $1)`
	if err := r.db.QueryRow(ctx, countQuery, p.UserID).Scan(&p.Stats.ActiveJobs, &p.Stats.TotalApplications); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *providerProfileRepo) Upsert(ctx context.Context, profile *domain.JobProviderProfile) error {
	companyInfo, err := json.Marshal(profile.CompanyInfo)
	if err != nil {
		return err
	}
	contactInfo, err := json.Marshal(profile.ContactInfo)
	if err != nil {
		return err
	}
	var logo []byte
	if profile.CompanyLogo != nil {
		logo, err = json.Marshal(profile.CompanyLogo)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO job_provider_profiles (
			user_id, company_name, company_info, contact_info,
			business_email, gstin, company_logo, plan, job_posts_limit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_info = EXCLUDED.company_info,
			contact_info = EXCLUDED.contact_info,
			business_email = EXCLUDED.business_email,
			gstin = EXCLUDED.gstin,
			company_logo = EXCLUDED.company_logo,
			updated_at = NOW()
		RETURNING id, is_verified, verified_at, plan, job_posts_limit, job_posts_used,
		          status, created_at, updated_at`

	plan := profile.Subscription.Plan
	if plan == "" {
		plan = domain.PlanFree
	}
	limit := profile.Subscription.JobPostsLimit
	if limit == 0 {
		limit = domain.DefaultJobPostsLimit
	}

	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.CompanyInfo.CompanyName, companyInfo, contactInfo,
		profile.Verification.BusinessEmail, profile.Verification.GSTIN, logo, plan, limit,
	).Scan(
		&profile.ID, &profile.Verification.IsVerified, &profile.Verification.VerifiedAt,
		&profile.Subscription.Plan, &profile.Subscription.JobPostsLimit, &profile.Subscription.JobPostsUsed,
		&profile.Status, &profile.CreatedAt, &profile.UpdatedAt,
	)
}

func (r *providerProfileRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	query := `UPDATE job_provider_profiles SET
			is_verified = $2,
			verified_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
