package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	appRepo    domain.ApplicationRepository
	jobRepo    domain.JobRepository
	seekerRepo domain.SeekerProfileRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository, seekerRepo domain.SeekerProfileRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:    appRepo,
		jobRepo:    jobRepo,
		seekerRepo: seekerRepo,
	}
}

// Apply submits an application with a snapshot of the seeker's current resume.
// The job must be open, the seeker must have an uploaded resume, and the
// unique (job, seeker) index backs up the duplicate pre-check.
func (u *applicationUsecase) Apply(ctx context.Context, seekerID, jobID, coverLetter string, answers []domain.ScreeningAnswer) (*domain.Application, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !job.IsOpenForApplications() {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	profile, err := u.seekerRepo.GetByUserID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Please complete your profile before applying")
		}
		return nil, apperror.Internal(err)
	}
	if profile.Resume == nil || profile.Resume.URL == "" {
		return nil, apperror.BadRequest("Please upload a resume before applying")
	}

	exists, err := u.appRepo.Exists(ctx, jobID, seekerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	for _, q := range job.ScreeningQuestions {
		if !q.Required {
			continue
		}
		answered := false
		for _, a := range answers {
			if a.Question == q.Question && a.Answer != "" {
				answered = true
				break
			}
		}
		if !answered {
			return nil, apperror.BadRequest(fmt.Sprintf("Screening question %q requires an answer", q.Question))
		}
	}

	app := &domain.Application{
		JobID:            jobID,
		JobSeekerID:      seekerID,
		JobProviderID:    job.ProviderUserID,
		Resume:           *profile.Resume,
		CoverLetter:      coverLetter,
		ScreeningAnswers: answers,
		CurrentStatus:    domain.StatusApplied,
		StatusHistory: []domain.StatusChange{{
			Status:    domain.StatusApplied,
			ChangedAt: time.Now(),
			ChangedBy: seekerID,
		}},
	}

	if err := u.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, apperror.BadRequest("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	app.JobTitle = job.BasicInfo.Title
	app.CompanyName = job.CompanyName
	return app, nil
}

func (u *applicationUsecase) GetMyApplications(ctx context.Context, seekerID, status string, page, limit int) ([]domain.Application, domain.Pagination, error) {
	if status != "" && !domain.IsValidApplicationStatus(status) {
		return nil, domain.Pagination{}, apperror.BadRequest("Unknown application status: " + status)
	}
	page, limit = normalizePage(page, limit)
	apps, total, err := u.appRepo.FetchBySeeker(ctx, seekerID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return apps, domain.NewPagination(page, limit, total), nil
}

// Withdraw moves the seeker's own application to Withdrawn. Only applications
// still in flight can be withdrawn; the job's applications counter is left
// untouched so it keeps reflecting total interest.
func (u *applicationUsecase) Withdraw(ctx context.Context, seekerID, applicationID string) error {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if app.JobSeekerID != seekerID {
		return apperror.Forbidden("You do not own this application")
	}
	if !app.IsActive() {
		return apperror.BadRequest("Only active applications can be withdrawn")
	}

	upd := domain.StatusUpdate{
		NewStatus: domain.StatusWithdrawn,
		ActorID:   seekerID,
	}
	if err := u.appRepo.UpdateStatus(ctx, app, upd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("Application changed concurrently, please retry")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *applicationUsecase) ListForJob(ctx context.Context, providerID, jobID, status string, page, limit int) ([]domain.Application, domain.Pagination, error) {
	if status != "" && !domain.IsValidApplicationStatus(status) {
		return nil, domain.Pagination{}, apperror.BadRequest("Unknown application status: " + status)
	}
	if _, err := u.ownedJob(ctx, providerID, jobID); err != nil {
		return nil, domain.Pagination{}, err
	}

	page, limit = normalizePage(page, limit)
	apps, total, err := u.appRepo.FetchByJob(ctx, jobID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, apperror.Internal(err)
	}
	return apps, domain.NewPagination(page, limit, total), nil
}

func (u *applicationUsecase) UpdateStatus(ctx context.Context, providerID, applicationID, newStatus, notes string) (*domain.Application, error) {
	if !domain.IsValidApplicationStatus(newStatus) {
		return nil, apperror.BadRequest("Unknown application status: " + newStatus)
	}
	return u.transition(ctx, providerID, applicationID, domain.StatusUpdate{
		NewStatus: newStatus,
		ActorID:   providerID,
		Notes:     notes,
	})
}

func (u *applicationUsecase) ScheduleInterview(ctx context.Context, providerID, applicationID string, interview *domain.Interview) (*domain.Application, error) {
	if interview == nil || interview.ScheduledDate.IsZero() {
		return nil, apperror.BadRequest("Interview schedule date is required")
	}
	return u.transition(ctx, providerID, applicationID, domain.StatusUpdate{
		NewStatus: domain.StatusInterviewScheduled,
		ActorID:   providerID,
		Interview: interview,
	})
}

func (u *applicationUsecase) MakeOffer(ctx context.Context, providerID, applicationID string, offer *domain.Offer) (*domain.Application, error) {
	if offer == nil || offer.SalaryAmount <= 0 {
		return nil, apperror.BadRequest("Offer salary amount is required")
	}
	return u.transition(ctx, providerID, applicationID, domain.StatusUpdate{
		NewStatus: domain.StatusOffered,
		ActorID:   providerID,
		Offer:     offer,
	})
}

func (u *applicationUsecase) transition(ctx context.Context, providerID, applicationID string, upd domain.StatusUpdate) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if app.JobProviderID != providerID {
		return nil, apperror.Forbidden("This application does not belong to one of your jobs")
	}
	if upd.NewStatus == domain.StatusWithdrawn {
		return nil, apperror.Forbidden("Only the applicant can withdraw an application")
	}
	if !domain.CanTransitionApplicationStatus(app.CurrentStatus, upd.NewStatus) {
		return nil, apperror.BadRequest(fmt.Sprintf("Cannot change application status from %s to %s", app.CurrentStatus, upd.NewStatus))
	}

	if err := u.appRepo.UpdateStatus(ctx, app, upd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Application changed concurrently, please retry")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// ExportForJob renders every application for one of the provider's jobs into
// an xlsx workbook.
func (u *applicationUsecase) ExportForJob(ctx context.Context, providerID, jobID string) ([]byte, error) {
	if _, err := u.ownedJob(ctx, providerID, jobID); err != nil {
		return nil, err
	}

	const batch = 500
	var apps []domain.Application
	for offset := 0; ; offset += batch {
		page, _, err := u.appRepo.FetchByJob(ctx, jobID, "", batch, offset)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		apps = append(apps, page...)
		if len(page) < batch {
			break
		}
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"CANDIDATE", "EMAIL", "STATUS", "APPLIED AT", "RESUME URL", "COVER LETTER"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		values := []interface{}{
			app.SeekerName,
			app.SeekerEmail,
			app.CurrentStatus,
			app.CreatedAt.Format(time.RFC3339),
			app.Resume.URL,
			app.CoverLetter,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 25)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}
	return buf.Bytes(), nil
}

func (u *applicationUsecase) ownedJob(ctx context.Context, providerID, jobID string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.ProviderUserID != providerID {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}
