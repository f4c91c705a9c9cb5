package handlers

import (
	"errors"
	"net/http"

	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReportHandler struct {
	reportService   *services.ReportService
	workflowService *services.WorkflowService
	validator       *validator.Validate
}

func NewReportHandler(reportService *services.ReportService, workflowService *services.WorkflowService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		workflowService: workflowService,
		validator:       validator.New(),
	}
}

// CreateReport appends a mission completion record
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req services.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	report, err := h.reportService.CreateReport(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create report", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Report created successfully", report)
}

// CompleteMission runs the terminal workflow step: report, mission release
// and fuel request consumption in one operation
func (h *ReportHandler) CompleteMission(c *gin.Context) {
	var req services.CompleteMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.workflowService.CompleteMission(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to complete mission", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Mission completed successfully", result)
}

type updateDestStatusRequest struct {
	DestStatus string `json:"destStatus" validate:"required"`
}

// UpdateDestStatus patches the destination status of a report
func (h *ReportHandler) UpdateDestStatus(c *gin.Context) {
	reportID := c.Param("id")

	var req updateDestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	report, err := h.reportService.UpdateDestStatus(reportID, req.DestStatus)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Report not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update report", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Report updated successfully", report)
}

// GetAllReports lists every completion record, newest first
func (h *ReportHandler) GetAllReports(c *gin.Context) {
	reports, err := h.reportService.GetAllReports()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve reports", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reports retrieved successfully", reports)
}

// GetReportsByVehicleNo lists completion records for a vehicle
func (h *ReportHandler) GetReportsByVehicleNo(c *gin.Context) {
	vehicleNo := c.Param("vehicleNo")

	reports, err := h.reportService.GetReportsByVehicleNo(vehicleNo)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve reports", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reports retrieved successfully", reports)
}
