package auth_test

import (
	"testing"
	"time"

	"go-jobportal-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndVerify(t *testing.T) {
	m := auth.NewManager("unit-test-secret", time.Hour)

	t.Run("Should round-trip claims", func(t *testing.T) {
		token, err := m.Issue("user-1", "a@example.com", "JOB_SEEKER")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := m.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "a@example.com", claims.Email)
		assert.Equal(t, "JOB_SEEKER", claims.Role)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := auth.NewManager("different-secret", time.Hour)
		token, err := other.Issue("user-1", "a@example.com", "JOB_SEEKER")
		assert.NoError(t, err)

		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired := auth.NewManager("unit-test-secret", -time.Minute)
		token, err := expired.Issue("user-1", "a@example.com", "JOB_SEEKER")
		assert.NoError(t, err)

		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := m.Verify("not.a.token")
		assert.Error(t, err)
	})
}
