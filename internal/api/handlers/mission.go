package handlers

import (
	"errors"
	"net/http"

	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	missionService *services.MissionService
}

func NewMissionHandler(missionService *services.MissionService) *MissionHandler {
	return &MissionHandler{
		missionService: missionService,
	}
}

// CreateMission assigns a mission to a driver
func (h *MissionHandler) CreateMission(c *gin.Context) {
	var req services.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	mission, err := h.missionService.CreateMission(&req)
	if err != nil {
		var missingErr *services.MissingFieldsError
		if errors.As(err, &missingErr) {
			utils.MissingFieldsResponse(c, missingErr.Fields)
			return
		}
		if errors.Is(err, services.ErrMissionConflict) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Driver already has an active mission", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create mission", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mission created successfully", mission)
}

// AcknowledgeMission marks a mission as accepted by its driver
func (h *MissionHandler) AcknowledgeMission(c *gin.Context) {
	missionID := c.Param("id")
	if missionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Mission ID is required", nil)
		return
	}

	mission, err := h.missionService.AcknowledgeMission(missionID)
	if err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Mission not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to acknowledge mission", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mission acknowledged successfully", mission)
}

// GetAllMissions lists every open mission
func (h *MissionHandler) GetAllMissions(c *gin.Context) {
	missions, err := h.missionService.GetAllMissions()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve missions", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Missions retrieved successfully", missions)
}

// GetMissionByEmail fetches the active mission for a driver email
func (h *MissionHandler) GetMissionByEmail(c *gin.Context) {
	email := c.Param("email")

	mission, err := h.missionService.GetMissionByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Mission not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve mission", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mission retrieved successfully", mission)
}

// DeleteMissionByEmail removes the active mission for a driver email
func (h *MissionHandler) DeleteMissionByEmail(c *gin.Context) {
	email := c.Param("email")

	if err := h.missionService.DeleteMissionByEmail(email); err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Mission not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete mission", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mission deleted successfully", nil)
}
