package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	profileUC   domain.ProviderProfileUsecase
	jobUC       domain.JobUsecase
	appUC       domain.ApplicationUsecase
	dashboardUC domain.DashboardUsecase
}

func NewProviderHandler(provider *gin.RouterGroup, profileUC domain.ProviderProfileUsecase, jobUC domain.JobUsecase, appUC domain.ApplicationUsecase, dashboardUC domain.DashboardUsecase) {
	handler := &ProviderHandler{
		profileUC:   profileUC,
		jobUC:       jobUC,
		appUC:       appUC,
		dashboardUC: dashboardUC,
	}

	provider.GET("/profile", handler.GetProfile)
	provider.PUT("/profile", handler.UpsertProfile)
	provider.GET("/dashboard", handler.Dashboard)

	jobs := provider.Group("/jobs")
	{
		jobs.GET("", handler.ListJobs)
		jobs.POST("", handler.CreateJob)
		jobs.PUT("/:id", handler.UpdateJob)
		jobs.PATCH("/:id/status", handler.ChangeJobStatus)
		jobs.POST("/:id/close", handler.CloseJob)
		jobs.GET("/:id/applications", handler.ListApplications)
		jobs.GET("/:id/applications/export", handler.ExportApplications)
	}

	apps := provider.Group("/applications")
	{
		apps.PATCH("/:id/status", handler.UpdateApplicationStatus)
		apps.POST("/:id/interview", handler.ScheduleInterview)
		apps.POST("/:id/offer", handler.MakeOffer)
	}
}

// GetProfile godoc
// @Summary      Get my company profile
// @Tags         job-provider
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-provider/profile [get]
// @Security     BearerAuth
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	profile, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

// UpsertProfile godoc
// @Summary      Create or update my company profile
// @Description  Multipart request: a "profile" JSON part plus an optional
// @Description  "logo" image part. Logos are normalized to 300x300 JPEG.
// @Tags         job-provider
// @Accept       multipart/form-data
// @Produce      json
// @Param        profile  formData  string  false  "Profile JSON"
// @Param        logo     formData  file    false  "Company logo (jpg, png, webp)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job-provider/profile [put]
// @Security     BearerAuth
func (h *ProviderHandler) UpsertProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var input *domain.ProviderProfileInput
	if raw := c.PostForm("profile"); raw != "" {
		input = &domain.ProviderProfileInput{}
		if err := json.Unmarshal([]byte(raw), input); err != nil {
			c.Error(apperror.BadRequest("Invalid profile JSON: " + err.Error()))
			return
		}
	}

	var logo *domain.UploadFile
	if header, err := c.FormFile("logo"); err == nil {
		logo, err = readUpload(header)
		if err != nil {
			c.Error(err)
			return
		}
	}

	if input == nil && logo == nil {
		c.Error(apperror.BadRequest("Nothing to update"))
		return
	}

	profile, err := h.profileUC.CreateOrUpdate(c.Request.Context(), userID, input, logo)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}

// Dashboard godoc
// @Summary      Provider dashboard
// @Tags         job-provider
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job-provider/dashboard [get]
// @Security     BearerAuth
func (h *ProviderHandler) Dashboard(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	dashboard, err := h.dashboardUC.ProviderDashboard(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", dashboard)
}

type JobRequest struct {
	BasicInfo          domain.JobBasicInfo        `json:"basicInfo" binding:"required"`
	Description        domain.JobDescription      `json:"description" binding:"required"`
	Location           domain.JobLocation         `json:"location" binding:"required"`
	Compensation       domain.Compensation        `json:"compensation" binding:"required"`
	Requirements       domain.JobRequirements     `json:"requirements" binding:"required"`
	ScreeningQuestions []domain.ScreeningQuestion `json:"screeningQuestions"`
	Draft              bool                       `json:"draft"`
}

func (r *JobRequest) toJob() *domain.Job {
	job := &domain.Job{
		BasicInfo:          r.BasicInfo,
		Description:        r.Description,
		Location:           r.Location,
		Compensation:       r.Compensation,
		Requirements:       r.Requirements,
		ScreeningQuestions: r.ScreeningQuestions,
	}
	if r.Draft {
		job.Status = domain.JobStatusDraft
	}
	return job
}

// CreateJob godoc
// @Summary      Post a job
// @Description  Requires a verified provider profile with quota remaining
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        body  body      JobRequest  true  "Job payload"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /job-provider/jobs [post]
// @Security     BearerAuth
func (h *ProviderHandler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toJob()
	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job posted", job)
}

// ListJobs godoc
// @Summary      List my jobs
// @Tags         job-provider
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-provider/jobs [get]
// @Security     BearerAuth
func (h *ProviderHandler) ListJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	jobs, pagination, err := h.jobUC.GetMyJobs(c.Request.Context(), userID, c.Query("status"), page, limit)
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

// UpdateJob godoc
// @Summary      Update a job
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Job ID"
// @Param        body  body      JobRequest  true  "Job payload"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /job-provider/jobs/{id} [put]
// @Security     BearerAuth
func (h *ProviderHandler) UpdateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toJob()
	job.ID = c.Param("id")
	if err := h.jobUC.UpdateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

type JobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Draft Active Paused Closed Expired"`
}

// ChangeJobStatus godoc
// @Summary      Change job status
// @Description  Legal moves: Draft->Active/Closed, Active->Paused/Closed/Expired, Paused->Active/Closed/Expired
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      JobStatusRequest  true  "Target status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /job-provider/jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *ProviderHandler) ChangeJobStatus(c *gin.Context) {
	var req JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.ChangeJobStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", nil)
}

// CloseJob godoc
// @Summary      Close a job
// @Tags         job-provider
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /job-provider/jobs/{id}/close [post]
// @Security     BearerAuth
func (h *ProviderHandler) CloseJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.CloseJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job closed", nil)
}

// ListApplications godoc
// @Summary      List applications for a job
// @Tags         job-provider
// @Produce      json
// @Param        id      path   string  true   "Job ID"
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-provider/jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ProviderHandler) ListApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	apps, pagination, err := h.appUC.ListForJob(c.Request.Context(), userID, c.Param("id"), c.Query("status"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "OK", gin.H{
		"applications": apps,
		"pagination":   pagination,
	})
}

// ExportApplications godoc
// @Summary      Export applications for a job as xlsx
// @Tags         job-provider
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Job ID"
// @Success      200  {file}  binary
// @Router       /job-provider/jobs/{id}/applications/export [get]
// @Security     BearerAuth
func (h *ProviderHandler) ExportApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	data, err := h.appUC.ExportForJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// UpdateApplicationStatus godoc
// @Summary      Move an application through the pipeline
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      ApplicationStatusRequest  true  "Target status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /job-provider/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ProviderHandler) UpdateApplicationStatus(c *gin.Context) {
	var req ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// ScheduleInterview godoc
// @Summary      Schedule an interview
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Application ID"
// @Param        body  body      domain.Interview  true  "Interview details"
// @Success      200   {object}  response.Response
// @Router       /job-provider/applications/{id}/interview [post]
// @Security     BearerAuth
func (h *ProviderHandler) ScheduleInterview(c *gin.Context) {
	var interview domain.Interview
	if err := c.ShouldBindJSON(&interview); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.ScheduleInterview(c.Request.Context(), userID, c.Param("id"), &interview)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview scheduled", app)
}

// MakeOffer godoc
// @Summary      Extend an offer
// @Tags         job-provider
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Application ID"
// @Param        body  body      domain.Offer  true  "Offer details"
// @Success      200   {object}  response.Response
// @Router       /job-provider/applications/{id}/offer [post]
// @Security     BearerAuth
func (h *ProviderHandler) MakeOffer(c *gin.Context) {
	var offer domain.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.MakeOffer(c.Request.Context(), userID, c.Param("id"), &offer)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer extended", app)
}
