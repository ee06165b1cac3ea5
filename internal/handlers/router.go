package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
	"github.com/EduPort-F-2025/portfolio-service/internal/services"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
	"github.com/EduPort-F-2025/portfolio-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	portfolioHandler *PortfolioHandler
	adminHandler     *AdminHandler
	sessionMW        *SessionMiddleware
	snapshots        repositories.SnapshotStore
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	store *store.Store,
	snapshots repositories.SnapshotStore,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Portfolio(), logger),
		portfolioHandler: NewPortfolioHandler(serviceManager.Portfolio(), logger),
		adminHandler:     NewAdminHandler(serviceManager.Admin(), logger),
		sessionMW:        NewSessionMiddleware(store),
		snapshots:        snapshots,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Session routes, reachable without a session
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/session", hm.authHandler.Session)
		}

		// Teacher routes
		teacher := v1.Group("")
		teacher.Use(hm.sessionMW.RequireSession())
		teacher.Use(hm.sessionMW.RequireRoleMiddleware(models.RoleTeacher))
		{
			teacher.GET("/portfolio", hm.portfolioHandler.Dashboard)
			teacher.PUT("/profile", hm.portfolioHandler.UpdateProfile)

			teacher.POST("/practices", hm.portfolioHandler.CreatePractice)
			teacher.DELETE("/practices/:id", hm.portfolioHandler.DeletePractice)
			teacher.POST("/practices/proof", hm.portfolioHandler.UploadPracticeProof)

			teacher.POST("/seminars", hm.portfolioHandler.CreateSeminar)
			teacher.DELETE("/seminars/:id", hm.portfolioHandler.DeleteSeminar)
			teacher.POST("/seminars/proof", hm.portfolioHandler.UploadSeminarProof)
		}

		// Admin routes, read-only
		admin := v1.Group("/admin")
		admin.Use(hm.sessionMW.RequireSession())
		admin.Use(hm.sessionMW.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/portfolio", hm.adminHandler.Portfolio)
			admin.GET("/overview", hm.adminHandler.Overview)
			admin.GET("/report", hm.adminHandler.Report)
		}
	}
}

// HealthCheck reports service and snapshot backend health
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.snapshots.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
