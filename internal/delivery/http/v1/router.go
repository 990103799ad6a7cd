package v1

import (
	"net/http"
	"time"

	"ats-backend/config"
	"ats-backend/internal/delivery/http/middleware"
	"ats-backend/internal/delivery/http/response"
	"ats-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Uploaded CVs are served back as static files.
	r.Static("/uploads", "./"+deps.Config.UploadDir)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Candidate routes (public; the submission endpoint gets its own limiter)
	submitLimiter := middleware.RateLimit(middleware.SubmitRateLimitConfig(deps.Config.RateLimitSubmitThreshold, window))
	NewCandidateHandler(v1, deps.CandidateUC, submitLimiter)

	return r
}
