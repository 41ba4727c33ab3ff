package v1

import (
	"net/http"
	"strconv"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC     domain.AdminUsecase
	dashboardUC domain.DashboardUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase, dashboardUC domain.DashboardUsecase) {
	handler := &AdminHandler{
		adminUC:     adminUC,
		dashboardUC: dashboardUC,
	}

	admin.GET("/stats", handler.Stats)
	admin.PATCH("/providers/:id/verification", handler.VerifyProvider)

	jobs := admin.Group("/jobs")
	{
		jobs.GET("", handler.ListJobs)
		jobs.POST("/:id/approve", handler.ApproveJob)
		jobs.POST("/:id/reject", handler.RejectJob)
		jobs.POST("/:id/flag", handler.FlagJob)
		jobs.POST("/:id/unflag", handler.UnflagJob)
	}
}

// Stats godoc
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardUC.AdminStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "OK", stats)
}

type VerifyProviderRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// VerifyProvider godoc
// @Summary      Set a provider's verification flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Provider profile ID"
// @Param        body  body      VerifyProviderRequest  true  "Verification flag"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/providers/{id}/verification [patch]
// @Security     BearerAuth
func (h *AdminHandler) VerifyProvider(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid provider profile id"))
		return
	}

	var req VerifyProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.adminUC.VerifyProvider(c.Request.Context(), profileID, *req.Verified); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Provider verification updated", nil)
}

// ListJobs godoc
// @Summary      List jobs for moderation
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /admin/jobs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	jobs, pagination, err := h.adminUC.ListJobsForModeration(c.Request.Context(), c.Query("status"), page, limit)
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

// ApproveJob godoc
// @Summary      Approve a job for public listing
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /admin/jobs/{id}/approve [post]
// @Security     BearerAuth
func (h *AdminHandler) ApproveJob(c *gin.Context) {
	adminID := c.GetString(string(domain.KeyUserID))
	if err := h.adminUC.ApproveJob(c.Request.Context(), adminID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job approved", nil)
}

type ModerationReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

// RejectJob godoc
// @Summary      Reject a job
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Job ID"
// @Param        body  body      ModerationReasonRequest  true  "Rejection reason"
// @Success      200   {object}  response.Response
// @Router       /admin/jobs/{id}/reject [post]
// @Security     BearerAuth
func (h *AdminHandler) RejectJob(c *gin.Context) {
	var req ModerationReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	adminID := c.GetString(string(domain.KeyUserID))
	if err := h.adminUC.RejectJob(c.Request.Context(), adminID, c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job rejected", nil)
}

// FlagJob godoc
// @Summary      Flag a job for review
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Job ID"
// @Param        body  body      ModerationReasonRequest  true  "Flag reason"
// @Success      200   {object}  response.Response
// @Router       /admin/jobs/{id}/flag [post]
// @Security     BearerAuth
func (h *AdminHandler) FlagJob(c *gin.Context) {
	var req ModerationReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.adminUC.FlagJob(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job flagged", nil)
}

// UnflagJob godoc
// @Summary      Clear a job's flag
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /admin/jobs/{id}/unflag [post]
// @Security     BearerAuth
func (h *AdminHandler) UnflagJob(c *gin.Context) {
	if err := h.adminUC.UnflagJob(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job flag cleared", nil)
}
