package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EduPort-F-2025/portfolio-service/internal/services"
	"github.com/EduPort-F-2025/portfolio-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// Portfolio returns the full roster and both record collections,
// unfiltered
func (h *AdminHandler) Portfolio(c *gin.Context) {
	view, err := h.adminService.View(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Overview returns per-teacher activity counts
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Report streams the activity overview as an xlsx workbook
func (h *AdminHandler) Report(c *gin.Context) {
	data, err := h.adminService.ExportActivityReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("teacher-activity-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
