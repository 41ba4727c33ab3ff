package domain_test

import (
	"testing"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCompleteness(t *testing.T) {
	t.Run("Empty profile scores zero", func(t *testing.T) {
		p := &domain.JobSeekerProfile{}
		assert.Equal(t, 0, p.CalculateCompleteness())
	})

	t.Run("Full profile scores 100", func(t *testing.T) {
		p := &domain.JobSeekerProfile{
			PersonalInfo: domain.PersonalInfo{
				FirstName: "Asha", LastName: "Rao", Phone: "+91-9000000000",
			},
			ProfessionalInfo: domain.ProfessionalInfo{
				Skills:         []string{"Go", "PostgreSQL"},
				ExpectedSalary: domain.SalaryExpectation{Min: 500000, Max: 900000},
			},
			WorkExperience: []domain.WorkExperience{{Company: "Acme", Position: "Engineer"}},
			Education:      []domain.Education{{Institution: "IIT", Degree: "B.Tech"}},
			Resume:         &domain.FileRef{URL: "https://cdn.example.com/r.pdf"},
		}
		assert.Equal(t, 100, p.CalculateCompleteness())
		assert.Equal(t, 100, p.ProfileCompleteness)
	})

	t.Run("Personal info needs first name, last name and phone together", func(t *testing.T) {
		p := &domain.JobSeekerProfile{
			PersonalInfo: domain.PersonalInfo{FirstName: "Asha", LastName: "Rao"},
		}
		assert.Equal(t, 0, p.CalculateCompleteness())

		p.PersonalInfo.Phone = "+91-9000000000"
		assert.Equal(t, domain.WeightPersonalInfo, p.CalculateCompleteness())
	})

	t.Run("Professional info needs skills and a positive expected salary", func(t *testing.T) {
		p := &domain.JobSeekerProfile{
			ProfessionalInfo: domain.ProfessionalInfo{Skills: []string{"Go"}},
		}
		assert.Equal(t, 0, p.CalculateCompleteness())

		p.ProfessionalInfo.ExpectedSalary.Min = 1
		assert.Equal(t, domain.WeightProfessionalInfo, p.CalculateCompleteness())
	})

	t.Run("Resume without URL does not count", func(t *testing.T) {
		p := &domain.JobSeekerProfile{Resume: &domain.FileRef{Key: "resumes/x.pdf"}}
		assert.Equal(t, 0, p.CalculateCompleteness())
	})
}

func TestJobStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{domain.JobStatusDraft, domain.JobStatusActive},
		{domain.JobStatusDraft, domain.JobStatusClosed},
		{domain.JobStatusActive, domain.JobStatusPaused},
		{domain.JobStatusActive, domain.JobStatusClosed},
		{domain.JobStatusActive, domain.JobStatusExpired},
		{domain.JobStatusPaused, domain.JobStatusActive},
		{domain.JobStatusPaused, domain.JobStatusClosed},
	}
	for _, tc := range allowed {
		assert.True(t, domain.CanTransitionJobStatus(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{domain.JobStatusDraft, domain.JobStatusPaused},
		{domain.JobStatusClosed, domain.JobStatusActive},
		{domain.JobStatusExpired, domain.JobStatusActive},
		{domain.JobStatusActive, domain.JobStatusDraft},
		{domain.JobStatusClosed, domain.JobStatusClosed},
	}
	for _, tc := range denied {
		assert.False(t, domain.CanTransitionJobStatus(tc.from, tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	t.Run("Pipeline moves forward", func(t *testing.T) {
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusApplied, domain.StatusUnderReview))
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusUnderReview, domain.StatusShortlisted))
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusShortlisted, domain.StatusInterviewScheduled))
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusInterviewScheduled, domain.StatusInterviewed))
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusInterviewed, domain.StatusOffered))
		assert.True(t, domain.CanTransitionApplicationStatus(domain.StatusOffered, domain.StatusHired))
	})

	t.Run("Terminal statuses allow nothing", func(t *testing.T) {
		for _, terminal := range []string{domain.StatusHired, domain.StatusRejected, domain.StatusWithdrawn} {
			for _, to := range []string{domain.StatusApplied, domain.StatusUnderReview, domain.StatusHired} {
				assert.False(t, domain.CanTransitionApplicationStatus(terminal, to))
			}
		}
	})

	t.Run("No skipping stages", func(t *testing.T) {
		assert.False(t, domain.CanTransitionApplicationStatus(domain.StatusApplied, domain.StatusHired))
		assert.False(t, domain.CanTransitionApplicationStatus(domain.StatusApplied, domain.StatusOffered))
		assert.False(t, domain.CanTransitionApplicationStatus(domain.StatusShortlisted, domain.StatusOffered))
	})

	t.Run("Withdraw is possible from every active status", func(t *testing.T) {
		active := []string{
			domain.StatusApplied, domain.StatusUnderReview, domain.StatusShortlisted,
			domain.StatusInterviewScheduled, domain.StatusInterviewed, domain.StatusOffered,
		}
		for _, from := range active {
			assert.True(t, domain.CanTransitionApplicationStatus(from, domain.StatusWithdrawn), "withdraw from %s", from)
		}
	})
}

func TestIsValidApplicationStatus(t *testing.T) {
	assert.True(t, domain.IsValidApplicationStatus("Under Review"))
	assert.True(t, domain.IsValidApplicationStatus("Interview Scheduled"))
	assert.False(t, domain.IsValidApplicationStatus("under review"))
	assert.False(t, domain.IsValidApplicationStatus("Pending"))
	assert.False(t, domain.IsValidApplicationStatus(""))
}

func TestMakeSlug(t *testing.T) {
	job := &domain.Job{
		ID:        "f3a1b2c4-0000-0000-0000-0000009fe2ab",
		BasicInfo: domain.JobBasicInfo{Title: "Senior Go Engineer (Remote!)"},
	}
	slug := job.MakeSlug()
	assert.Equal(t, "senior-go-engineer-remote-9fe2ab", slug)
	assert.Equal(t, slug, job.Slug)
}

func TestIsOpenForApplications(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	job := domain.Job{
		Status:     domain.JobStatusActive,
		Moderation: domain.Moderation{IsApproved: true},
		ExpiresAt:  &future,
	}
	assert.True(t, job.IsOpenForApplications())

	notApproved := job
	notApproved.Moderation.IsApproved = false
	assert.False(t, notApproved.IsOpenForApplications())

	paused := job
	paused.Status = domain.JobStatusPaused
	assert.False(t, paused.IsOpenForApplications())

	expired := job
	expired.ExpiresAt = &past
	assert.False(t, expired.IsOpenForApplications())
}

func TestNewPagination(t *testing.T) {
	p := domain.NewPagination(2, 10, 35)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.Total)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := domain.NewPagination(4, 10, 35)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := domain.NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestCanPostJob(t *testing.T) {
	p := domain.JobProviderProfile{
		Subscription: domain.Subscription{JobPostsLimit: 3, JobPostsUsed: 2},
	}
	assert.True(t, p.CanPostJob())

	p.Subscription.JobPostsUsed = 3
	assert.False(t, p.CanPostJob())
}
