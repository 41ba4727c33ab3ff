package domain

import (
	"context"
	"time"
)

// Profile completeness weights, summing to 100
const (
	WeightPersonalInfo     = 20
	WeightProfessionalInfo = 25
	WeightWorkExperience   = 20
	WeightEducation        = 15
	WeightResume           = 20
)

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type PersonalInfo struct {
	FirstName   string     `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    string     `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone       string     `json:"phone"`
	Location    Location   `json:"location"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender,omitempty" validate:"omitempty,oneof='Male' 'Female' 'Other' 'Prefer not to say'"`
}

type SalaryExpectation struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type ProfessionalInfo struct {
	CurrentJobTitle string            `json:"currentJobTitle,omitempty"`
	ExperienceYears int               `json:"experienceYears"`
	ExpectedSalary  SalaryExpectation `json:"expectedSalary"`
	Skills          []string          `json:"skills"`
	Industries      []string          `json:"industries,omitempty"`
	JobTypes        []string          `json:"jobTypes,omitempty"`
	WorkPreference  string            `json:"workPreference,omitempty"`
}

type WorkExperience struct {
	Company      string     `json:"company" validate:"required"`
	Position     string     `json:"position" validate:"required"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	IsCurrentJob bool       `json:"isCurrentJob"`
	Description  string     `json:"description,omitempty"`
	Location     string     `json:"location,omitempty"`
}

type Education struct {
	Institution  string     `json:"institution" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldOfStudy,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Grade        string     `json:"grade,omitempty"`
}

type Portfolio struct {
	Website  string   `json:"website,omitempty"`
	LinkedIn string   `json:"linkedin,omitempty"`
	GitHub   string   `json:"github,omitempty"`
	Other    []string `json:"other,omitempty"`
}

type JobSeekerProfile struct {
	ID                  int64            `json:"id"`
	UserID              string           `json:"userId"`
	PersonalInfo        PersonalInfo     `json:"personalInfo"`
	ProfessionalInfo    ProfessionalInfo `json:"professionalInfo"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Education           []Education      `json:"education"`
	Resume              *FileRef         `json:"resume,omitempty"`
	Portfolio           Portfolio        `json:"portfolio"`
	ProfileCompleteness int              `json:"profileCompleteness"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// CalculateCompleteness recomputes the weighted completeness score from
// section presence checks and stores it on the profile.
func (p *JobSeekerProfile) CalculateCompleteness() int {
	score := 0

	if p.PersonalInfo.FirstName != "" && p.PersonalInfo.LastName != "" && p.PersonalInfo.Phone != "" {
		score += WeightPersonalInfo
	}
	if len(p.ProfessionalInfo.Skills) > 0 && p.ProfessionalInfo.ExpectedSalary.Min > 0 {
		score += WeightProfessionalInfo
	}
	if len(p.WorkExperience) > 0 {
		score += WeightWorkExperience
	}
	if len(p.Education) > 0 {
		score += WeightEducation
	}
	if p.Resume != nil && p.Resume.URL != "" {
		score += WeightResume
	}

	p.ProfileCompleteness = score
	return score
}

// SeekerProfileInput is the merge payload for create-or-update. Nil sections
// leave the stored value untouched.
type SeekerProfileInput struct {
	PersonalInfo     *PersonalInfo     `json:"personalInfo,omitempty"`
	ProfessionalInfo *ProfessionalInfo `json:"professionalInfo,omitempty"`
	WorkExperience   []WorkExperience  `json:"workExperience,omitempty"`
	Education        []Education       `json:"education,omitempty"`
	Portfolio        *Portfolio        `json:"portfolio,omitempty"`
}

type SeekerProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*JobSeekerProfile, error)
	Upsert(ctx context.Context, profile *JobSeekerProfile) error
}

type SeekerProfileUsecase interface {
	CreateOrUpdate(ctx context.Context, userID string, input *SeekerProfileInput, resume *UploadFile) (*JobSeekerProfile, error)
	GetProfile(ctx context.Context, userID string) (*JobSeekerProfile, error)
}
