package domain

import "context"

// AdminUsecase groups the moderation operations reserved for admins.
type AdminUsecase interface {
	VerifyProvider(ctx context.Context, profileID int64, verified bool) error
	ListJobsForModeration(ctx context.Context, status string, page, limit int) ([]Job, Pagination, error)
	ApproveJob(ctx context.Context, adminID, jobID string) error
	RejectJob(ctx context.Context, adminID, jobID, reason string) error
	FlagJob(ctx context.Context, jobID, reason string) error
	UnflagJob(ctx context.Context, jobID string) error
}
