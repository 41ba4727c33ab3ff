package v1

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps resume and logo uploads at 5 MB
const maxUploadSize = 5 << 20

type SeekerHandler struct {
	profileUC   domain.SeekerProfileUsecase
	jobUC       domain.JobUsecase
	appUC       domain.ApplicationUsecase
	dashboardUC domain.DashboardUsecase
}

func NewSeekerHandler(seeker *gin.RouterGroup, profileUC domain.SeekerProfileUsecase, jobUC domain.JobUsecase, appUC domain.ApplicationUsecase, dashboardUC domain.DashboardUsecase) {
	handler := &SeekerHandler{
		profileUC:   profileUC,
		jobUC:       jobUC,
		appUC:       appUC,
		dashboardUC: dashboardUC,
	}

	seeker.GET("/profile", handler.GetProfile)
	seeker.PUT("/profile", handler.UpsertProfile)
	seeker.GET("/dashboard", handler.Dashboard)
	seeker.GET("/jobs/search", handler.SearchJobs)

	apps := seeker.Group("/applications")
	{
		apps.GET("", handler.ListApplications)
		apps.POST("", handler.Apply)
		apps.POST("/:id/withdraw", handler.Withdraw)
	}
}

func readUpload(header *multipart.FileHeader) (*domain.UploadFile, error) {
	if header.Size > maxUploadSize {
		return nil, apperror.BadRequest("File exceeds the 5MB size limit")
	}
	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(data) > maxUploadSize {
		return nil, apperror.BadRequest("File exceeds the 5MB size limit")
	}

	return &domain.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// GetProfile godoc
// @Summary      Get my seeker profile
// @Tags         job-seeker
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-seeker/profile [get]
// @Security     BearerAuth
func (h *SeekerHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	profile, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

// UpsertProfile godoc
// @Summary      Create or update my seeker profile
// @Description  Multipart request: a "profile" JSON part with the sections to
// @Description  change plus an optional "resume" file part
// @Tags         job-seeker
// @Accept       multipart/form-data
// @Produce      json
// @Param        profile  formData  string  false  "Profile JSON"
// @Param        resume   formData  file    false  "Resume (pdf, doc, docx)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job-seeker/profile [put]
// @Security     BearerAuth
func (h *SeekerHandler) UpsertProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var input *domain.SeekerProfileInput
	if raw := c.PostForm("profile"); raw != "" {
		input = &domain.SeekerProfileInput{}
		if err := json.Unmarshal([]byte(raw), input); err != nil {
			c.Error(apperror.BadRequest("Invalid profile JSON: " + err.Error()))
			return
		}
	}

	var resume *domain.UploadFile
	if header, err := c.FormFile("resume"); err == nil {
		resume, err = readUpload(header)
		if err != nil {
			c.Error(err)
			return
		}
	}

	if input == nil && resume == nil {
		c.Error(apperror.BadRequest("Nothing to update"))
		return
	}

	profile, err := h.profileUC.CreateOrUpdate(c.Request.Context(), userID, input, resume)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}

// Dashboard godoc
// @Summary      Seeker dashboard
// @Tags         job-seeker
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job-seeker/dashboard [get]
// @Security     BearerAuth
func (h *SeekerHandler) Dashboard(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	dashboard, err := h.dashboardUC.SeekerDashboard(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", dashboard)
}

// SearchJobs godoc
// @Summary      Search jobs (seeker mirror)
// @Description  Same search surface as the public /jobs endpoint
// @Tags         job-seeker
// @Produce      json
// @Param        keyword  query  string  false  "Keyword"
// @Param        page     query  int     false  "Page"
// @Param        limit    query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-seeker/jobs/search [get]
// @Security     BearerAuth
func (h *SeekerHandler) SearchJobs(c *gin.Context) {
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

type ApplyRequest struct {
	JobID            string                   `json:"jobId" binding:"required,uuid"`
	CoverLetter      string                   `json:"coverLetter" binding:"max=5000"`
	ScreeningAnswers []domain.ScreeningAnswer `json:"screeningAnswers"`
}

// Apply godoc
// @Summary      Apply to a job
// @Tags         job-seeker
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Application payload"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /job-seeker/applications [post]
// @Security     BearerAuth
func (h *SeekerHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	seekerID := c.GetString(string(domain.KeyUserID))
	app, err := h.appUC.Apply(c.Request.Context(), seekerID, req.JobID, req.CoverLetter, req.ScreeningAnswers)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListApplications godoc
// @Summary      List my applications
// @Tags         job-seeker
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-seeker/applications [get]
// @Security     BearerAuth
func (h *SeekerHandler) ListApplications(c *gin.Context) {
	seekerID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	apps, pagination, err := h.appUC.GetMyApplications(c.Request.Context(), seekerID, c.Query("status"), page, limit)
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

// Withdraw godoc
// @Summary      Withdraw an application
// @Tags         job-seeker
// @Produce      json
// @Param        id  path  string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job-seeker/applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *SeekerHandler) Withdraw(c *gin.Context) {
	seekerID := c.GetString(string(domain.KeyUserID))
	if err := h.appUC.Withdraw(c.Request.Context(), seekerID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
