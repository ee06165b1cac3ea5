package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EduPort-F-2025/portfolio-service/internal/services"
	"github.com/EduPort-F-2025/portfolio-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	portfolioService services.PortfolioService
}

func NewAuthHandler(portfolioService services.PortfolioService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:      NewBaseHandler(logger),
		portfolioService: portfolioService,
	}
}

// Login opens a session for the given email and role selection. Any
// email is accepted; the admin sentinel email always yields the admin
// identity.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.portfolioService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"surface": h.portfolioService.ReachableSurface(c.Request.Context()),
	})
}

// Logout closes the session. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.portfolioService.Logout(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Session reports which surface the current session may reach.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"surface": h.portfolioService.ReachableSurface(c.Request.Context()),
	})
}
