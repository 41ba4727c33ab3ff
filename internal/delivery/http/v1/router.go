package v1

import (
	"net/http"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC            domain.AuthUsecase
	SeekerProfileUC   domain.SeekerProfileUsecase
	ProviderProfileUC domain.ProviderProfileUsecase
	JobUC             domain.JobUsecase
	ApplicationUC     domain.ApplicationUsecase
	DashboardUC       domain.DashboardUsecase
	AdminUC           domain.AdminUsecase
	ContactUC         domain.ContactUsecase
	Tokens            *auth.Manager
	Config            *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before everything else
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig()))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public surface. Job details resolve the viewer when a token is present
	// so the response can report hasApplied.
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(deps.Tokens, deps.AuthUC))
	{
		NewJobHandler(public, deps.JobUC)
		NewContactHandler(public, deps.ContactUC)
	}

	// Stricter limits on credential endpoints
	authGroup := v1.Group("")
	authGroup.Use(middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	NewAuthHandler(authGroup, protected, deps.AuthUC)

	seeker := protected.Group("/job-seeker")
	seeker.Use(middleware.RequireRole(domain.RoleJobSeeker))
	NewSeekerHandler(seeker, deps.SeekerProfileUC, deps.JobUC, deps.ApplicationUC, deps.DashboardUC)

	provider := protected.Group("/job-provider")
	provider.Use(middleware.RequireRole(domain.RoleJobProvider))
	NewProviderHandler(provider, deps.ProviderProfileUC, deps.JobUC, deps.ApplicationUC, deps.DashboardUC)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	NewAdminHandler(admin, deps.AdminUC, deps.DashboardUC)

	return r
}
