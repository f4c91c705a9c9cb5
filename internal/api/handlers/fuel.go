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

type FuelHandler struct {
	fuelService *services.FuelService
	validator   *validator.Validate
}

func NewFuelHandler(fuelService *services.FuelService) *FuelHandler {
	return &FuelHandler{
		fuelService: fuelService,
		validator:   validator.New(),
	}
}

// CreateFuelRequest files a new fuel request for a vehicle
func (h *FuelHandler) CreateFuelRequest(c *gin.Context) {
	var req services.CreateFuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	fuel, err := h.fuelService.CreateFuelRequest(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create fuel request", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Fuel request created successfully", fuel)
}

// GetAllFuelRequests lists every fuel request, newest first
func (h *FuelHandler) GetAllFuelRequests(c *gin.Context) {
	fuels, err := h.fuelService.GetAllFuelRequests()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve fuel requests", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel requests retrieved successfully", fuels)
}

// GetReviewingFuelRequests lists the requests still awaiting review
func (h *FuelHandler) GetReviewingFuelRequests(c *gin.Context) {
	fuels, err := h.fuelService.GetReviewingFuelRequests()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve fuel requests", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel requests retrieved successfully", fuels)
}

type updateFuelStatusRequest struct {
	Status string   `json:"status" validate:"required"`
	Litre  *float64 `json:"litre,omitempty"`
}

// UpdateFuelStatus resolves a fuel request with an approval or decline
func (h *FuelHandler) UpdateFuelStatus(c *gin.Context) {
	fuelID := c.Param("id")

	var req updateFuelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	fuel, err := h.fuelService.UpdateFuelStatus(fuelID, req.Status, req.Litre)
	if err != nil {
		if errors.Is(err, repository.ErrFuelRequestNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Fuel request not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update fuel request", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel request updated successfully", fuel)
}

// GetFuelRequestsByVehicleNo lists all requests for a vehicle, any status
func (h *FuelHandler) GetFuelRequestsByVehicleNo(c *gin.Context) {
	vehicleNo := c.Param("vehicleNo")

	fuels, err := h.fuelService.GetFuelRequestsByVehicleNo(vehicleNo)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve fuel requests", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel requests retrieved successfully", fuels)
}

// DeleteFuelRequest removes a fuel request once it has been consumed
func (h *FuelHandler) DeleteFuelRequest(c *gin.Context) {
	fuelID := c.Param("id")

	if err := h.fuelService.DeleteFuelRequest(fuelID); err != nil {
		if errors.Is(err, repository.ErrFuelRequestNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Fuel request not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete fuel request", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel request deleted successfully", nil)
}
