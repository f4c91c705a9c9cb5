package handlers

import (
	"errors"
	"net/http"

	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUnassignedDrivers lists drivers without a vehicle
func (h *UserHandler) GetUnassignedDrivers(c *gin.Context) {
	drivers, err := h.userService.GetUnassignedDrivers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve drivers", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved successfully", drivers)
}

// GetUserByEmail looks up a directory record
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "User not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve user", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}
