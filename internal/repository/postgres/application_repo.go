package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `
	a.id, a.job_id, a.job_seeker_id, a.job_provider_id, a.resume, a.cover_letter,
	a.screening_answers, a.current_status, a.status_history, a.interview, a.offer,
	a.created_at, a.updated_at,
	COALESCE(j.title, '') AS job_title,
	COALESCE(pp.company_name, '') AS company_name,
	COALESCE(u.full_name, '') AS seeker_name,
	COALESCE(u.email, '') AS seeker_email`

const applicationFrom = `
	FROM applications a
	LEFT JOIN jobs j ON a.job_id = j.id
	LEFT JOIN job_provider_profiles pp ON j.company_id = pp.id
	LEFT JOIN users u ON a.job_seeker_id = u.id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	var resume, answers, history []byte
	var interview, offer []byte

	err := row.Scan(
		&a.ID, &a.JobID, &a.JobSeekerID, &a.JobProviderID, &resume, &a.CoverLetter,
		&answers, &a.CurrentStatus, &history, &interview, &offer,
		&a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.CompanyName, &a.SeekerName, &a.SeekerEmail,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resume, &a.Resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	if err := json.Unmarshal(answers, &a.ScreeningAnswers); err != nil {
		return nil, fmt.Errorf("failed to decode screening_answers: %w", err)
	}
	if err := json.Unmarshal(history, &a.StatusHistory); err != nil {
		return nil, fmt.Errorf("failed to decode status_history: %w", err)
	}
	if len(interview) > 0 {
		if err := json.Unmarshal(interview, &a.Interview); err != nil {
			return nil, fmt.Errorf("failed to decode interview: %w", err)
		}
	}
	if len(offer) > 0 {
		if err := json.Unmarshal(offer, &a.Offer); err != nil {
			return nil, fmt.Errorf("failed to decode offer: %w", err)
		}
	}
	return &a, nil
}

// Create inserts the application and bumps the job's applications counter in
// one transaction. The unique (job_id, job_seeker_id) index is the duplicate
// guard of record; a 23505 surfaces as ErrDuplicateApplication.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	resume, err := json.Marshal(app.Resume)
	if err != nil {
		return err
	}
	if app.ScreeningAnswers == nil {
		app.ScreeningAnswers = []domain.ScreeningAnswer{}
	}
	answers, err := json.Marshal(app.ScreeningAnswers)
	if err != nil {
		return err
	}
	if app.StatusHistory == nil {
		app.StatusHistory = []domain.StatusChange{}
	}
	history, err := json.Marshal(app.StatusHistory)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO applications (
			job_id, job_seeker_id, job_provider_id, resume, cover_letter,
			screening_answers, current_status, status_history
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insertQuery,
		app.JobID, app.JobSeekerID, app.JobProviderID, resume, app.CoverLetter,
		answers, app.CurrentStatus, history,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateApplication
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET applications = applications + 1 WHERE id = $1`, app.JobID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT` + applicationColumns + applicationFrom + ` WHERE a.id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND job_seeker_id = $2)`,
		jobID, seekerID,
	).Scan(&exists)
	return exists, err
}

// UpdateStatus appends the outgoing status to the history log, overwrites the
// current status and runs the counter side effects, all in one transaction.
// appendStatusChange records the status being replaced: exactly one entry per
// change, holding the prior current status. The new status only ever lands in
// current_status.
func appendStatusChange(app *domain.Application, upd domain.StatusUpdate, now time.Time) []domain.StatusChange {
	return append(app.StatusHistory, domain.StatusChange{
		Status:    app.CurrentStatus,
		ChangedAt: now,
		ChangedBy: upd.ActorID,
		Notes:     upd.Notes,
	})
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, upd domain.StatusUpdate) error {
	now := time.Now()
	newHistory := appendStatusChange(app, upd, now)
	history, err := json.Marshal(newHistory)
	if err != nil {
		return err
	}

	interview := app.Interview
	if upd.Interview != nil {
		interview = upd.Interview
	}
	offer := app.Offer
	if upd.Offer != nil {
		offer = upd.Offer
	}
	var interviewDoc, offerDoc []byte
	if interview != nil {
		if interviewDoc, err = json.Marshal(interview); err != nil {
			return err
		}
	}
	if offer != nil {
		if offerDoc, err = json.Marshal(offer); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE applications SET
			current_status = $2,
			status_history = $3,
			interview = $4,
			offer = $5,
			updated_at = NOW()
		WHERE id = $1 AND current_status = $6`
	result, err := tx.Exec(ctx, query,
		app.ID, upd.NewStatus, history, interviewDoc, offerDoc, app.CurrentStatus)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// lost a race with a concurrent status change
		return domain.ErrNotFound
	}

	var counterQuery string
	switch upd.NewStatus {
	case domain.StatusShortlisted:
		counterQuery = `UPDATE jobs SET shortlisted = shortlisted + 1 WHERE id = $1`
	case domain.StatusInterviewed:
		counterQuery = `UPDATE jobs SET interviewed = interviewed + 1 WHERE id = $1`
	case domain.StatusHired:
		counterQuery = `UPDATE jobs SET hired = hired + 1 WHERE id = $1`
	}
	if counterQuery != "" {
		if _, err := tx.Exec(ctx, counterQuery, app.JobID); err != nil {
			return err
		}
	}
	if upd.NewStatus == domain.StatusHired {
		hireQuery := `UPDATE job_provider_profiles SET total_hires = total_hires + 1, updated_at = NOW()
		              WHERE user_id = $1`
		if _, err := tx.Exec(ctx, hireQuery, app.JobProviderID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	app.StatusHistory = newHistory
	app.CurrentStatus = upd.NewStatus
	app.Interview = interview
	app.Offer = offer
	app.UpdatedAt = now
	return nil
}

func (r *applicationRepo) FetchBySeeker(ctx context.Context, seekerID, status string, limit, offset int) ([]domain.Application, int64, error) {
	where := `WHERE a.job_seeker_id = $1`
	args := []interface{}{seekerID}
	if status != "" {
		where += ` AND a.current_status = $2`
		args = append(args, status)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY a.created_at DESC LIMIT %d OFFSET %d`,
		applicationColumns, applicationFrom, where, limit, offset)
	apps, err := r.fetchApplications(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications a ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) FetchByJob(ctx context.Context, jobID, status string, limit, offset int) ([]domain.Application, int64, error) {
	where := `WHERE a.job_id = $1`
	args := []interface{}{jobID}
	if status != "" {
		where += ` AND a.current_status = $2`
		args = append(args, status)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY a.created_at DESC LIMIT %d OFFSET %d`,
		applicationColumns, applicationFrom, where, limit, offset)
	apps, err := r.fetchApplications(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications a ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) CountBySeeker(ctx context.Context, seekerID string, statuses []string) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE job_seeker_id = $1`
	args := []interface{}{seekerID}
	if len(statuses) > 0 {
		query += ` AND current_status = ANY($2)`
		args = append(args, pq.Array(statuses))
	}
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *applicationRepo) CountByProvider(ctx context.Context, providerID string, statuses []string) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE job_provider_id = $1`
	args := []interface{}{providerID}
	if len(statuses) > 0 {
		query += ` AND current_status = ANY($2)`
		args = append(args, pq.Array(statuses))
	}
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *applicationRepo) RecentBySeeker(ctx context.Context, seekerID string, limit int) ([]domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.job_seeker_id = $1 ORDER BY a.created_at DESC LIMIT %d`,
		applicationColumns, applicationFrom, limit)
	return r.fetchApplications(ctx, query, seekerID)
}

func (r *applicationRepo) RecentByProvider(ctx context.Context, providerID string, limit int) ([]domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE a.job_provider_id = $1 ORDER BY a.created_at DESC LIMIT %d`,
		applicationColumns, applicationFrom, limit)
	return r.fetchApplications(ctx, query, providerID)
}

func (r *applicationRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&total)
	return total, err
}

func (r *applicationRepo) fetchApplications(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
