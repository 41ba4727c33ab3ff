package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job lifecycle statuses
const (
	JobStatusDraft   = "Draft"
	JobStatusActive  = "Active"
	JobStatusPaused  = "Paused"
	JobStatusClosed  = "Closed"
	JobStatusExpired = "Expired"
)

// jobTransitions is the table of legal status moves. Closed and Expired are
// terminal.
var jobTransitions = map[string][]string{
	JobStatusDraft:   {JobStatusActive, JobStatusClosed},
	JobStatusActive:  {JobStatusPaused, JobStatusClosed, JobStatusExpired},
	JobStatusPaused:  {JobStatusActive, JobStatusClosed, JobStatusExpired},
	JobStatusClosed:  {},
	JobStatusExpired: {},
}

// CanTransitionJobStatus reports whether from -> to is a legal job status move.
func CanTransitionJobStatus(from, to string) bool {
	for _, s := range jobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type JobBasicInfo struct {
	Title           string `json:"title" validate:"required,max=100"`
	Department      string `json:"department,omitempty"`
	JobType         string `json:"jobType" validate:"required,oneof=Full-time Part-time Contract Freelance Internship"`
	WorkMode        string `json:"workMode" validate:"required,oneof=Remote On-site Hybrid"`
	ExperienceLevel string `json:"experienceLevel" validate:"required,oneof='Entry Level' 'Mid Level' 'Senior Level' 'Executive'"`
}

type JobDescription struct {
	Overview         string   `json:"overview" validate:"required,max=2000"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
}

type JobLocation struct {
	Country  string `json:"country" validate:"required"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	Address  string `json:"address,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	IsRemote bool   `json:"isRemote"`
}

type SalaryRange struct {
	Min      float64 `json:"min" validate:"required,gt=0"`
	Max      float64 `json:"max" validate:"required,gt=0,gtefield=Min"`
	Currency string  `json:"currency"`
	Period   string  `json:"period,omitempty"`
}

type Compensation struct {
	SalaryRange        SalaryRange `json:"salaryRange"`
	Negotiable         bool        `json:"negotiable"`
	AdditionalBenefits []string    `json:"additionalBenefits,omitempty"`
}

type JobRequirements struct {
	EducationLevel  string   `json:"educationLevel,omitempty"`
	ExperienceMin   int      `json:"experienceMin"`
	ExperienceMax   int      `json:"experienceMax,omitempty"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
}

type ScreeningQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type,omitempty"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type Moderation struct {
	IsApproved      bool       `json:"isApproved"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	IsFlagged       bool       `json:"isFlagged"`
	FlagReason      string     `json:"flagReason,omitempty"`
}

type JobStats struct {
	Views        int64 `json:"views"`
	Applications int64 `json:"applications"`
	Shortlisted  int64 `json:"shortlisted"`
	Interviewed  int64 `json:"interviewed"`
	Hired        int64 `json:"hired"`
}

type Job struct {
	ID                 string              `json:"id"`
	ProviderUserID     string              `json:"providerUserId"`
	CompanyID          int64               `json:"companyId"`
	BasicInfo          JobBasicInfo        `json:"basicInfo"`
	Description        JobDescription      `json:"description"`
	Location           JobLocation         `json:"location"`
	Compensation       Compensation        `json:"compensation"`
	Requirements       JobRequirements     `json:"requirements"`
	ScreeningQuestions []ScreeningQuestion `json:"screeningQuestions,omitempty"`
	Status             string              `json:"status"`
	Moderation         Moderation          `json:"moderation"`
	Stats              JobStats            `json:"stats"`
	Slug               string              `json:"slug"`
	PostedAt           time.Time           `json:"postedAt"`
	ExpiresAt          *time.Time          `json:"expiresAt,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`

	// Joined data for list/detail responses
	CompanyName string   `json:"companyName,omitempty"`
	CompanyLogo *FileRef `json:"companyLogo,omitempty"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// MakeSlug derives the URL slug from the job title and the tail of its id.
func (j *Job) MakeSlug() string {
	base := strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(j.BasicInfo.Title), "-"), "-")
	suffix := j.ID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	j.Slug = base + "-" + suffix
	return j.Slug
}

// IsExpired is a derived check; nothing sweeps expired jobs automatically.
func (j *Job) IsExpired() bool {
	return j.ExpiresAt != nil && time.Now().After(*j.ExpiresAt)
}

// IsOpenForApplications reports whether seekers may apply right now.
func (j *Job) IsOpenForApplications() bool {
	return j.Status == JobStatusActive && j.Moderation.IsApproved && !j.IsExpired()
}

// JobSearchFilter carries the optional search criteria; zero values mean
// "not supplied".
type JobSearchFilter struct {
	Keyword         string
	Location        string
	JobType         string
	WorkMode        string
	ExperienceLevel string
	SalaryMin       float64
	SalaryMax       float64
	SortBy          string
	SortOrder       string
}

// Pagination is the shared page envelope for list responses
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination derives the page flags from total/page/limit.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     int64(page)*int64(limit) < total,
		HasPrev:     page > 1,
	}
}

type JobRepository interface {
	// Create inserts the job and consumes one unit of the provider's quota in
	// the same transaction; returns false when the quota is exhausted.
	Create(ctx context.Context, job *Job) (bool, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, job *Job, newStatus string) error
	IncrementViews(ctx context.Context, id string) error
	FetchByProvider(ctx context.Context, providerUserID, status string, limit, offset int) ([]Job, int64, error)
	Search(ctx context.Context, filter JobSearchFilter, limit, offset int) ([]Job, int64, error)
	FetchForModeration(ctx context.Context, status string, limit, offset int) ([]Job, int64, error)
	SetApproval(ctx context.Context, id string, approved bool, adminID, reason string) error
	SetFlag(ctx context.Context, id string, flagged bool, reason string) error
	TopByApplications(ctx context.Context, providerUserID string, limit int) ([]Job, error)
	CountByProvider(ctx context.Context, providerUserID string) (total, active int64, err error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	GetMyJobs(ctx context.Context, userID, status string, page, limit int) ([]Job, Pagination, error)
	UpdateJob(ctx context.Context, userID string, job *Job) error
	ChangeJobStatus(ctx context.Context, userID, jobID, newStatus string) error
	CloseJob(ctx context.Context, userID, jobID string) error
	GetJobDetails(ctx context.Context, seekerID, jobID string) (*Job, bool, error)
	SearchJobs(ctx context.Context, filter JobSearchFilter, page, limit int) ([]Job, Pagination, error)
}
