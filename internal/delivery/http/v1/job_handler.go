package v1

import (
	"net/http"
	"strconv"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the public job surface: search and job details. Seekers
// and anonymous visitors only ever see approved Active jobs here.
type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := public.Group("/jobs")
	{
		jobs.GET("", handler.Search)
		jobs.GET("/:id", handler.Details)
	}
}

// Search godoc
// @Summary      Search jobs
// @Description  Full-text and filtered search over approved active jobs
// @Tags         jobs
// @Produce      json
// @Param        keyword          query  string  false  "Keyword"
// @Param        location         query  string  false  "Location"
// @Param        jobType          query  string  false  "Job type"
// @Param        workMode         query  string  false  "Work mode"
// @Param        experienceLevel  query  string  false  "Experience level"
// @Param        salaryMin        query  number  false  "Minimum salary"
// @Param        salaryMax        query  number  false  "Maximum salary"
// @Param        sortBy           query  string  false  "Sort field (postedAt, salary, views, applications)"
// @Param        sortOrder        query  string  false  "asc or desc"
// @Param        page             query  int     false  "Page"
// @Param        limit            query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) Search(c *gin.Context) {
	filter, page, limit := parseJobSearch(c)

	jobs, pagination, err := h.jobUC.SearchJobs(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	response.Success(c, http.StatusOK, "OK", gin.H{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

// parseJobSearch reads the shared search query parameters; the same surface is
// exposed publicly and mirrored under the seeker group.
func parseJobSearch(c *gin.Context) (domain.JobSearchFilter, int, int) {
	salaryMin, _ := strconv.ParseFloat(c.Query("salaryMin"), 64)
	salaryMax, _ := strconv.ParseFloat(c.Query("salaryMax"), 64)

	filter := domain.JobSearchFilter{
		Keyword:         c.Query("keyword"),
		Location:        c.Query("location"),
		JobType:         c.Query("jobType"),
		WorkMode:        c.Query("workMode"),
		ExperienceLevel: c.Query("experienceLevel"),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return filter, page, limit
}

// Details godoc
// @Summary      Job details
// @Description  Returns the job plus whether the logged-in seeker has applied
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) Details(c *gin.Context) {
	// empty when the viewer is anonymous; OptionalAuth fills it otherwise
	seekerID := ""
	if c.GetString(string(domain.KeyUserRole)) == domain.RoleJobSeeker {
		seekerID = c.GetString(string(domain.KeyUserID))
	}

	job, hasApplied, err := h.jobUC.GetJobDetails(c.Request.Context(), seekerID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", gin.H{
		"job":        job,
		"hasApplied": hasApplied,
	})
}
