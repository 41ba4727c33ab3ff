package postgres

import (
	"testing"

	"go-jobportal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSearchWhere(t *testing.T) {
	t.Run("Should always apply the seeker-visibility baseline", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{})
		assert.Contains(t, where, `j.status = 'Active'`)
		assert.Contains(t, where, `j.is_approved = TRUE`)
		assert.Contains(t, where, `j.expires_at IS NULL OR j.expires_at > NOW()`)
		assert.Empty(t, args)
	})

	t.Run("Should match the keyword against the search vector", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{Keyword: "golang austin"})
		assert.Contains(t, where, `j.search_vector @@ plainto_tsquery('english', $1)`)
		assert.Equal(t, []interface{}{"golang austin"}, args)
	})

	t.Run("Should match location case-insensitively as a substring", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{Location: "Austin"})
		assert.Contains(t, where, `j.location_text ILIKE $1`)
		assert.Equal(t, []interface{}{"%Austin%"}, args)
	})

	t.Run("Salary minimum constrains the job's lower bound", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{SalaryMin: 50000})
		assert.Contains(t, where, `j.salary_min >= $1`)
		assert.NotContains(t, where, `j.salary_max >=`)
		assert.Equal(t, []interface{}{float64(50000)}, args)
	})

	t.Run("Salary maximum constrains the job's upper bound", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{SalaryMax: 120000})
		assert.Contains(t, where, `j.salary_max <= $1`)
		assert.NotContains(t, where, `j.salary_min <=`)
		assert.Equal(t, []interface{}{float64(120000)}, args)
	})

	t.Run("Should narrow conjunctively with sequential placeholders", func(t *testing.T) {
		where, args := searchWhere(domain.JobSearchFilter{
			Location:  "Austin",
			JobType:   "Full-time",
			WorkMode:  "Remote",
			SalaryMin: 50000,
			SalaryMax: 120000,
		})
		assert.Contains(t, where, `j.location_text ILIKE $1`)
		assert.Contains(t, where, `j.job_type = $2`)
		assert.Contains(t, where, `j.work_mode = $3`)
		assert.Contains(t, where, `j.salary_min >= $4`)
		assert.Contains(t, where, `j.salary_max <= $5`)
		assert.Equal(t, []interface{}{"%Austin%", "Full-time", "Remote", float64(50000), float64(120000)}, args)
	})
}

func TestSearchOrderBy(t *testing.T) {
	t.Run("Should default to newest first", func(t *testing.T) {
		assert.Equal(t, "j.posted_at DESC", searchOrderBy(domain.JobSearchFilter{}))
	})

	t.Run("Should map known sort fields to their columns", func(t *testing.T) {
		assert.Equal(t, "j.salary_max ASC", searchOrderBy(domain.JobSearchFilter{SortBy: "salary", SortOrder: "asc"}))
		assert.Equal(t, "j.views DESC", searchOrderBy(domain.JobSearchFilter{SortBy: "views"}))
		assert.Equal(t, "j.applications DESC", searchOrderBy(domain.JobSearchFilter{SortBy: "applications"}))
	})

	t.Run("Should never interpolate unknown input", func(t *testing.T) {
		got := searchOrderBy(domain.JobSearchFilter{SortBy: "posted_at; DROP TABLE jobs", SortOrder: "sideways"})
		assert.Equal(t, "j.posted_at DESC", got)
	})
}
