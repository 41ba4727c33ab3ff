package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateApplication signals a second application for the same
// (job, seeker) pair; the unique index is the source of truth.
var ErrDuplicateApplication = errors.New("application already exists for this job")

// Application statuses
const (
	StatusApplied            = "Applied"
	StatusUnderReview        = "Under Review"
	StatusShortlisted        = "Shortlisted"
	StatusInterviewScheduled = "Interview Scheduled"
	StatusInterviewed        = "Interviewed"
	StatusOffered            = "Offered"
	StatusHired              = "Hired"
	StatusRejected           = "Rejected"
	StatusWithdrawn          = "Withdrawn"
)

// applicationTransitions is the table of legal status moves. Hired, Rejected
// and Withdrawn are terminal.
var applicationTransitions = map[string][]string{
	StatusApplied:            {StatusUnderReview, StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusUnderReview:        {StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusShortlisted:        {StatusInterviewScheduled, StatusRejected, StatusWithdrawn},
	StatusInterviewScheduled: {StatusInterviewed, StatusRejected, StatusWithdrawn},
	StatusInterviewed:        {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:            {StatusHired, StatusRejected, StatusWithdrawn},
	StatusHired:              {},
	StatusRejected:           {},
	StatusWithdrawn:          {},
}

// CanTransitionApplicationStatus reports whether from -> to is a legal move.
func CanTransitionApplicationStatus(from, to string) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidApplicationStatus reports whether s is one of the nine known statuses.
func IsValidApplicationStatus(s string) bool {
	_, ok := applicationTransitions[s]
	return ok
}

type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy"`
	Notes     string    `json:"notes,omitempty"`
}

type ScreeningAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Interview struct {
	ScheduledDate time.Time `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	Location      string    `json:"location,omitempty"`
	MeetingLink   string    `json:"meetingLink,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type Offer struct {
	SalaryAmount float64    `json:"salaryAmount"`
	Currency     string     `json:"currency,omitempty"`
	Period       string     `json:"period,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	Benefits     []string   `json:"benefits,omitempty"`
	Terms        string     `json:"terms,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Response     string     `json:"response,omitempty"`
}

type Application struct {
	ID               string            `json:"id"`
	JobID            string            `json:"jobId"`
	JobSeekerID      string            `json:"jobSeekerId"`
	JobProviderID    string            `json:"jobProviderId"`
	Resume           FileRef           `json:"resume"`
	CoverLetter      string            `json:"coverLetter,omitempty"`
	ScreeningAnswers []ScreeningAnswer `json:"screeningAnswers,omitempty"`
	CurrentStatus    string            `json:"currentStatus"`
	StatusHistory    []StatusChange    `json:"statusHistory"`
	Interview        *Interview        `json:"interview,omitempty"`
	Offer            *Offer            `json:"offer,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`

	// Joined data for list responses
	JobTitle    string `json:"jobTitle,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	SeekerName  string `json:"seekerName,omitempty"`
	SeekerEmail string `json:"seekerEmail,omitempty"`
}

// IsActive reports whether the application is still in flight.
func (a *Application) IsActive() bool {
	switch a.CurrentStatus {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return false
	}
	return true
}

// StatusUpdate describes a status change to persist: the prior status goes to
// the history log, newStatus overwrites current, and any counter side effects
// run in the same transaction.
type StatusUpdate struct {
	NewStatus string
	ActorID   string
	Notes     string
	Interview *Interview
	Offer     *Offer
}

type ApplicationRepository interface {
	// Create inserts the application and increments the job's applications
	// counter in the same transaction. Returns ErrDuplicateApplication when
	// the (job, seeker) pair already exists.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Exists(ctx context.Context, jobID, seekerID string) (bool, error)
	UpdateStatus(ctx context.Context, app *Application, upd StatusUpdate) error
	FetchBySeeker(ctx context.Context, seekerID, status string, limit, offset int) ([]Application, int64, error)
	FetchByJob(ctx context.Context, jobID, status string, limit, offset int) ([]Application, int64, error)
	CountBySeeker(ctx context.Context, seekerID string, statuses []string) (int64, error)
	CountByProvider(ctx context.Context, providerID string, statuses []string) (int64, error)
	RecentBySeeker(ctx context.Context, seekerID string, limit int) ([]Application, error)
	RecentByProvider(ctx context.Context, providerID string, limit int) ([]Application, error)
	CountAll(ctx context.Context) (int64, error)
}

type ApplicationUsecase interface {
	// Seeker operations
	Apply(ctx context.Context, seekerID, jobID, coverLetter string, answers []ScreeningAnswer) (*Application, error)
	GetMyApplications(ctx context.Context, seekerID, status string, page, limit int) ([]Application, Pagination, error)
	Withdraw(ctx context.Context, seekerID, applicationID string) error

	// Provider operations
	ListForJob(ctx context.Context, providerID, jobID, status string, page, limit int) ([]Application, Pagination, error)
	UpdateStatus(ctx context.Context, providerID, applicationID, newStatus, notes string) (*Application, error)
	ScheduleInterview(ctx context.Context, providerID, applicationID string, interview *Interview) (*Application, error)
	MakeOffer(ctx context.Context, providerID, applicationID string, offer *Offer) (*Application, error)
	ExportForJob(ctx context.Context, providerID, jobID string) ([]byte, error)
}
