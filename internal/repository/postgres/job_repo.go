package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `
	j.id, j.provider_user_id, j.company_id, j.title, j.department, j.job_type,
	j.work_mode, j.experience_level, j.description, j.location, j.compensation,
	j.requirements, j.screening_questions, j.status,
	j.is_approved, j.approved_by, j.approved_at, j.rejection_reason,
	j.is_flagged, j.flag_reason,
	j.views, j.applications, j.shortlisted, j.interviewed, j.hired,
	j.slug, j.posted_at, j.expires_at, j.created_at, j.updated_at,
	COALESCE(pp.company_name, '') AS company_name, pp.company_logo`

const jobFrom = ` FROM jobs j LEFT JOIN job_provider_profiles pp ON j.company_id = pp.id`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var description, location, compensation, requirements, screening []byte
	var approvedBy *string
	var logo []byte

	err := row.Scan(
		&j.ID, &j.ProviderUserID, &j.CompanyID, &j.BasicInfo.Title, &j.BasicInfo.Department,
		&j.BasicInfo.JobType, &j.BasicInfo.WorkMode, &j.BasicInfo.ExperienceLevel,
		&description, &location, &compensation, &requirements, &screening, &j.Status,
		&j.Moderation.IsApproved, &approvedBy, &j.Moderation.ApprovedAt, &j.Moderation.RejectionReason,
		&j.Moderation.IsFlagged, &j.Moderation.FlagReason,
		&j.Stats.Views, &j.Stats.Applications, &j.Stats.Shortlisted, &j.Stats.Interviewed, &j.Stats.Hired,
		&j.Slug, &j.PostedAt, &j.ExpiresAt, &j.CreatedAt, &j.UpdatedAt,
		&j.CompanyName, &logo,
	)
	if err != nil {
		return nil, err
	}
	if approvedBy != nil {
		j.Moderation.ApprovedBy = *approvedBy
	}

	if err := json.Unmarshal(description, &j.Description); err != nil {
		return nil, fmt.Errorf("failed to decode description: %w", err)
	}
	if err := json.Unmarshal(location, &j.Location); err != nil {
		return nil, fmt.Errorf("failed to decode location: %w", err)
	}
	if err := json.Unmarshal(compensation, &j.Compensation); err != nil {
		return nil, fmt.Errorf("failed to decode compensation: %w", err)
	}
	if err := json.Unmarshal(requirements, &j.Requirements); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	if err := json.Unmarshal(screening, &j.ScreeningQuestions); err != nil {
		return nil, fmt.Errorf("failed to decode screening_questions: %w", err)
	}
	if len(logo) > 0 {
		if err := json.Unmarshal(logo, &j.CompanyLogo); err != nil {
			return nil, fmt.Errorf("failed to decode company_logo: %w", err)
		}
	}
	return &j, nil
}

func marshalJobDocs(job *domain.Job) (description, location, compensation, requirements, screening []byte, err error) {
	if description, err = json.Marshal(job.Description); err != nil {
		return
	}
	if location, err = json.Marshal(job.Location); err != nil {
		return
	}
	if compensation, err = json.Marshal(job.Compensation); err != nil {
		return
	}
	if requirements, err = json.Marshal(job.Requirements); err != nil {
		return
	}
	if job.ScreeningQuestions == nil {
		job.ScreeningQuestions = []domain.ScreeningQuestion{}
	}
	screening, err = json.Marshal(job.ScreeningQuestions)
	return
}

func locationText(l domain.JobLocation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.State, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Create inserts the job and consumes one unit of the provider's posting quota
// in the same transaction. The guarded UPDATE loses the race cleanly: when the
// quota is already spent no row matches and we return false without inserting.
func (r *jobRepo) Create(ctx context.Context, job *domain.Job) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	quotaQuery := `UPDATE job_provider_profiles SET
			job_posts_used = job_posts_used + 1,
			total_jobs_posted = total_jobs_posted + 1,
			updated_at = NOW()
		WHERE user_id = $1 AND job_posts_used < job_posts_limit`
	cmdTag, err := tx.Exec(ctx, quotaQuery, job.ProviderUserID)
	if err != nil {
		return false, err
	}
	if cmdTag.RowsAffected() == 0 {
		return false, nil
	}

	description, location, compensation, requirements, screening, err := marshalJobDocs(job)
	if err != nil {
		return false, err
	}

	insertQuery := `
		INSERT INTO jobs (
			provider_user_id, company_id, title, department, job_type, work_mode,
			experience_level, description, location, location_text, compensation,
			salary_min, salary_max, requirements, required_skills,
			screening_questions, status, posted_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insertQuery,
		job.ProviderUserID, job.CompanyID, job.BasicInfo.Title, job.BasicInfo.Department,
		job.BasicInfo.JobType, job.BasicInfo.WorkMode, job.BasicInfo.ExperienceLevel,
		description, location, locationText(job.Location), compensation,
		job.Compensation.SalaryRange.Min, job.Compensation.SalaryRange.Max,
		requirements, pq.Array(job.Requirements.RequiredSkills),
		screening, job.Status, job.PostedAt, job.ExpiresAt,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return false, err
	}

	// slug needs the generated id
	if _, err := tx.Exec(ctx, `UPDATE jobs SET slug = $2 WHERE id = $1`, job.ID, job.MakeSlug()); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT` + jobColumns + jobFrom + ` WHERE j.id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	description, location, compensation, requirements, screening, err := marshalJobDocs(job)
	if err != nil {
		return err
	}

	query := `UPDATE jobs SET
			title = $2,
			department = $3,
			job_type = $4,
			work_mode = $5,
			experience_level = $6,
			description = $7,
			location = $8,
			location_text = $9,
			compensation = $10,
			salary_min = $11,
			salary_max = $12,
			requirements = $13,
			required_skills = $14,
			screening_questions = $15,
			slug = $16,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.BasicInfo.Title, job.BasicInfo.Department,
		job.BasicInfo.JobType, job.BasicInfo.WorkMode, job.BasicInfo.ExperienceLevel,
		description, location, locationText(job.Location), compensation,
		job.Compensation.SalaryRange.Min, job.Compensation.SalaryRange.Max,
		requirements, pq.Array(job.Requirements.RequiredSkills),
		screening, job.MakeSlug(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, job *domain.Job, newStatus string) error {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`
	result, err := r.db.Exec(ctx, query, job.ID, newStatus, job.Status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// lost a race with a concurrent status change
		return domain.ErrNotFound
	}
	job.Status = newStatus
	return nil
}

func (r *jobRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *jobRepo) FetchByProvider(ctx context.Context, providerUserID, status string, limit, offset int) ([]domain.Job, int64, error) {
	where := `WHERE j.provider_user_id = $1`
	args := []interface{}{providerUserID}
	if status != "" {
		where += ` AND j.status = $2`
		args = append(args, status)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d`,
		jobColumns, jobFrom, where, limit, offset)
	jobs, err := r.fetchJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs j ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// searchWhere builds the WHERE clause and args for Search. The baseline
// predicates are hardcoded so no client input can widen them; salary bounds
// constrain the matching bound column (min on salary_min, max on salary_max).
func searchWhere(filter domain.JobSearchFilter) (string, []interface{}) {
	conditions := []string{
		`j.status = 'Active'`,
		`j.is_approved = TRUE`,
		`(j.expires_at IS NULL OR j.expires_at > NOW())`,
	}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Keyword != "" {
		conditions = append(conditions, `j.search_vector @@ plainto_tsquery('english', `+arg(filter.Keyword)+`)`)
	}
	if filter.Location != "" {
		conditions = append(conditions, `j.location_text ILIKE `+arg("%"+filter.Location+"%"))
	}
	if filter.JobType != "" {
		conditions = append(conditions, `j.job_type = `+arg(filter.JobType))
	}
	if filter.WorkMode != "" {
		conditions = append(conditions, `j.work_mode = `+arg(filter.WorkMode))
	}
	if filter.ExperienceLevel != "" {
		conditions = append(conditions, `j.experience_level = `+arg(filter.ExperienceLevel))
	}
	if filter.SalaryMin > 0 {
		conditions = append(conditions, `j.salary_min >= `+arg(filter.SalaryMin))
	}
	if filter.SalaryMax > 0 {
		conditions = append(conditions, `j.salary_max <= `+arg(filter.SalaryMax))
	}

	return `WHERE ` + strings.Join(conditions, " AND "), args
}

// searchOrderBy maps the caller's sort onto a whitelisted column; nothing from
// the filter is ever interpolated into the ORDER BY.
func searchOrderBy(filter domain.JobSearchFilter) string {
	orderBy := "j.posted_at"
	switch filter.SortBy {
	case "salary":
		orderBy = "j.salary_max"
	case "views":
		orderBy = "j.views"
	case "applications":
		orderBy = "j.applications"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}
	return orderBy + " " + direction
}

// Search lists approved, unexpired Active jobs matching the filter. Only jobs
// visible to seekers ever leave this query.
func (r *jobRepo) Search(ctx context.Context, filter domain.JobSearchFilter, limit, offset int) ([]domain.Job, int64, error) {
	where, args := searchWhere(filter)

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT %d OFFSET %d`,
		jobColumns, jobFrom, where, searchOrderBy(filter), limit, offset)
	jobs, err := r.fetchJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs j ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchForModeration(ctx context.Context, status string, limit, offset int) ([]domain.Job, int64, error) {
	where := `WHERE 1=1`
	var args []interface{}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND j.status = $%d`, len(args))
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d`,
		jobColumns, jobFrom, where, limit, offset)
	jobs, err := r.fetchJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs j ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) SetApproval(ctx context.Context, id string, approved bool, adminID, reason string) error {
	query := `UPDATE jobs SET
			is_approved = $2,
			approved_by = CASE WHEN $2 THEN $3::uuid ELSE NULL END,
			approved_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
			rejection_reason = $4,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, approved, adminID, reason)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) SetFlag(ctx context.Context, id string, flagged bool, reason string) error {
	query := `UPDATE jobs SET is_flagged = $2, flag_reason = $3, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, flagged, reason)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) TopByApplications(ctx context.Context, providerUserID string, limit int) ([]domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE j.provider_user_id = $1 ORDER BY j.applications DESC, j.posted_at DESC LIMIT %d`,
		jobColumns, jobFrom, limit)
	return r.fetchJobs(ctx, query, providerUserID)
}

func (r *jobRepo) CountByProvider(ctx context.Context, providerUserID string) (int64, int64, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Active')
	          FROM jobs WHERE provider_user_id = $1`
	var total, active int64
	if err := r.db.QueryRow(ctx, query, providerUserID).Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *jobRepo) fetchJobs(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
