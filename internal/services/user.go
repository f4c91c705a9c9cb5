package services

import (
	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

// UserService exposes the directory lookups the dashboards need. The
// directory is an external collaborator of the workflow; only the reads the
// workflow and its UIs depend on are surfaced here.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.FindByEmail(email)
}

// GetUnassignedDrivers lists drivers without a vehicle, for the
// driver/vehicle pairing screen.
func (s *UserService) GetUnassignedDrivers() ([]*models.User, error) {
	return s.userRepo.FindUnassignedDrivers()
}

// GetDriverByVehicleNo resolves the driver registered for a vehicle number.
func (s *UserService) GetDriverByVehicleNo(vehicleNo string) (*models.User, error) {
	return s.userRepo.FindDriverByVehicleNo(vehicleNo)
}
