package postgres

import (
	"testing"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAppendStatusChange(t *testing.T) {
	seeded := []domain.StatusChange{{Status: domain.StatusApplied, ChangedBy: "seeker-1"}}

	t.Run("Should append exactly one entry holding the prior status", func(t *testing.T) {
		app := &domain.Application{
			CurrentStatus: domain.StatusUnderReview,
			StatusHistory: seeded,
		}
		now := time.Now()
		upd := domain.StatusUpdate{
			NewStatus: domain.StatusShortlisted,
			ActorID:   "provider-1",
			Notes:     "strong take-home",
		}

		history := appendStatusChange(app, upd, now)
		assert.Len(t, history, len(seeded)+1)

		entry := history[len(history)-1]
		assert.Equal(t, domain.StatusUnderReview, entry.Status)
		assert.Equal(t, "provider-1", entry.ChangedBy)
		assert.Equal(t, "strong take-home", entry.Notes)
		assert.Equal(t, now, entry.ChangedAt)
	})

	t.Run("Should preserve earlier entries untouched", func(t *testing.T) {
		app := &domain.Application{
			CurrentStatus: domain.StatusShortlisted,
			StatusHistory: []domain.StatusChange{
				{Status: domain.StatusApplied},
				{Status: domain.StatusUnderReview},
			},
		}
		history := appendStatusChange(app, domain.StatusUpdate{NewStatus: domain.StatusRejected, ActorID: "p1"}, time.Now())
		assert.Len(t, history, 3)
		assert.Equal(t, domain.StatusApplied, history[0].Status)
		assert.Equal(t, domain.StatusUnderReview, history[1].Status)
		assert.Equal(t, domain.StatusShortlisted, history[2].Status)
	})

	t.Run("The new status never appears in the appended entry", func(t *testing.T) {
		app := &domain.Application{CurrentStatus: domain.StatusApplied}
		history := appendStatusChange(app, domain.StatusUpdate{NewStatus: domain.StatusWithdrawn, ActorID: "s1"}, time.Now())
		assert.Len(t, history, 1)
		assert.NotEqual(t, domain.StatusWithdrawn, history[0].Status)
	})
}
