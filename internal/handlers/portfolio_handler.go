package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
	"github.com/EduPort-F-2025/portfolio-service/internal/services"
	"github.com/EduPort-F-2025/portfolio-service/internal/utils"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

// 10 MiB, matching typical browser upload limits for proof documents
const maxProofSize = 10 << 20

type PortfolioHandler struct {
	BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(portfolioService services.PortfolioService, logger utils.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      NewBaseHandler(logger),
		portfolioService: portfolioService,
	}
}

// Dashboard returns the session teacher's records only
func (h *PortfolioHandler) Dashboard(c *gin.Context) {
	view, err := h.portfolioService.Dashboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfile applies a partial profile change to the session teacher
func (h *PortfolioHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.portfolioService.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreatePractice creates a single-date activity record
func (h *PortfolioHandler) CreatePractice(c *gin.Context) {
	var req services.PracticeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	practice, err := h.portfolioService.CreatePractice(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, practice)
}

// DeletePractice removes a practice owned by the session teacher.
// Deleting an absent id succeeds.
func (h *PortfolioHandler) DeletePractice(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting practice", "practice_id", id)

	if err := h.portfolioService.DeletePractice(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Practice deleted"})
}

// CreateSeminar creates a date-range activity record
func (h *PortfolioHandler) CreateSeminar(c *gin.Context) {
	var req services.SeminarCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	seminar, err := h.portfolioService.CreateSeminar(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, seminar)
}

// DeleteSeminar removes a seminar owned by the session teacher
func (h *PortfolioHandler) DeleteSeminar(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting seminar", "seminar_id", id)

	if err := h.portfolioService.DeleteSeminar(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Seminar deleted"})
}

// UploadPracticeProof accepts a PDF proof document for asynchronous
// practice record creation
func (h *PortfolioHandler) UploadPracticeProof(c *gin.Context) {
	h.uploadProof(c, models.KindPractice)
}

// UploadSeminarProof accepts a PDF proof document for asynchronous
// seminar record creation
func (h *PortfolioHandler) UploadSeminarProof(c *gin.Context) {
	h.uploadProof(c, models.KindSeminar)
}

// uploadProof reads the multipart file and enqueues an enrichment job.
// A non-PDF upload is rejected here with no state change; the record
// itself appears only after extraction completes.
func (h *PortfolioHandler) uploadProof(c *gin.Context, kind models.RecordKind) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing proof file",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Message: "Proof file too large",
		})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != validator.PDFMimeType {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Only PDF proof documents are accepted",
			Details: map[string]string{"mime_type": mimeType},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to read proof file",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.LogError(c, err, "Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to read proof file",
		})
		return
	}

	accepted, err := h.portfolioService.UploadProof(c.Request.Context(), kind, &services.ProofUploadRequest{
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Proof upload accepted", "job_id", accepted.JobID, "kind", kind)
	c.JSON(http.StatusAccepted, accepted)
}
