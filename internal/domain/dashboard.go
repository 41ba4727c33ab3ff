package domain

import "context"

// SeekerDashboard is the live rollup for a job seeker
type SeekerDashboard struct {
	TotalApplications   int64         `json:"totalApplications"`
	ActiveApplications  int64         `json:"activeApplications"`
	Interviews          int64         `json:"interviews"`
	Offers              int64         `json:"offers"`
	ProfileCompleteness int           `json:"profileCompleteness"`
	RecentApplications  []Application `json:"recentApplications"`
}

// ProviderDashboard is the live rollup for a job provider
type ProviderDashboard struct {
	TotalJobs           int64         `json:"totalJobs"`
	ActiveJobs          int64         `json:"activeJobs"`
	TotalApplications   int64         `json:"totalApplications"`
	PendingApplications int64         `json:"pendingApplications"`
	RecentApplications  []Application `json:"recentApplications"`
	TopJobs             []Job         `json:"topJobs"`
}

// AdminStats is the platform-wide rollup
type AdminStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	UsersByRole       map[string]int64 `json:"usersByRole"`
	TotalJobs         int64            `json:"totalJobs"`
	ActiveJobs        int64            `json:"activeJobs"`
	TotalApplications int64            `json:"totalApplications"`
}

type DashboardUsecase interface {
	SeekerDashboard(ctx context.Context, seekerID string) (*SeekerDashboard, error)
	ProviderDashboard(ctx context.Context, providerID string) (*ProviderDashboard, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}
