package domain

import (
	"context"
	"time"
)

// Subscription plans
const (
	PlanFree       = "Free"
	PlanBasic      = "Basic"
	PlanPremium    = "Premium"
	PlanEnterprise = "Enterprise"
)

// DefaultJobPostsLimit applies to the Free plan
const DefaultJobPostsLimit = 3

type CompanyInfo struct {
	CompanyName  string   `json:"companyName" validate:"omitempty,min=2,max=200"`
	CompanySize  string   `json:"companySize,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Industry     string   `json:"industry,omitempty"`
	Description  string   `json:"description,omitempty" validate:"max=2000"`
	Website      string   `json:"website,omitempty" validate:"omitempty,url"`
	FoundedYear  int      `json:"foundedYear,omitempty"`
	Headquarters Location `json:"headquarters"`
}

type ContactPerson struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
}

type ContactInfo struct {
	PrimaryContact ContactPerson `json:"primaryContact"`
	HRContact      ContactPerson `json:"hrContact"`
}

type Verification struct {
	BusinessEmail string     `json:"businessEmail"`
	GSTIN         string     `json:"gstin,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
}

type Subscription struct {
	Plan          string     `json:"plan"`
	JobPostsLimit int        `json:"jobPostsLimit"`
	JobPostsUsed  int        `json:"jobPostsUsed"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

type ProviderStats struct {
	TotalJobsPosted   int64 `json:"totalJobsPosted"`
	ActiveJobs        int64 `json:"activeJobs"`
	TotalApplications int64 `json:"totalApplications"`
	TotalHires        int64 `json:"totalHires"`
}

type JobProviderProfile struct {
	ID           int64         `json:"id"`
	UserID       string        `json:"userId"`
	CompanyInfo  CompanyInfo   `json:"companyInfo"`
	ContactInfo  ContactInfo   `json:"contactInfo"`
	Verification Verification  `json:"verification"`
	CompanyLogo  *FileRef      `json:"companyLogo,omitempty"`
	Subscription Subscription  `json:"subscription"`
	Stats        ProviderStats `json:"stats"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// CanPostJob reports whether the provider still has quota left on its plan.
func (p *JobProviderProfile) CanPostJob() bool {
	return p.Subscription.JobPostsUsed < p.Subscription.JobPostsLimit
}

// ProviderProfileInput is the merge payload for create-or-update
type ProviderProfileInput struct {
	CompanyInfo  *CompanyInfo  `json:"companyInfo,omitempty"`
	ContactInfo  *ContactInfo  `json:"contactInfo,omitempty"`
	Verification *Verification `json:"verification,omitempty"`
}

type ProviderProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*JobProviderProfile, error)
	GetByID(ctx context.Context, id int64) (*JobProviderProfile, error)
	Upsert(ctx context.Context, profile *JobProviderProfile) error
	SetVerified(ctx context.Context, id int64, verified bool) error
}

type ProviderProfileUsecase interface {
	CreateOrUpdate(ctx context.Context, userID string, input *ProviderProfileInput, logo *UploadFile) (*JobProviderProfile, error)
	GetProfile(ctx context.Context, userID string) (*JobProviderProfile, error)
}
