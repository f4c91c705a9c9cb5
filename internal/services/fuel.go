package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"

	log "github.com/sirupsen/logrus"
)

// FuelService runs the fuel request and approval steps of the workflow.
type FuelService struct {
	fuelRepo repository.FuelRequestRepository
	userRepo repository.UserRepository
	notifier *NotificationService
}

func NewFuelService(fuelRepo repository.FuelRequestRepository, userRepo repository.UserRepository, notifier *NotificationService) *FuelService {
	return &FuelService{
		fuelRepo: fuelRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

type CreateFuelRequest struct {
	DName     string   `json:"dName" validate:"required"`
	DLastName string   `json:"dlastName"`
	VehicleNo string   `json:"vehicleNo" validate:"required"`
	Status    string   `json:"status" validate:"required"`
	Km        float64  `json:"km" validate:"required"`
	Litre     *float64 `json:"litre,omitempty"`
	Splace    string   `json:"splace,omitempty"`
	Dplace    string   `json:"dplace,omitempty"`
}

// CreateFuelRequest files a fuel request for a vehicle and notifies every
// fuel manager.
func (s *FuelService) CreateFuelRequest(req *CreateFuelRequest) (*models.FuelRequest, error) {
	status, _ := models.NormalizeFuelStatus(req.Status)

	fuel := &models.FuelRequest{
		DName:     req.DName,
		DLastName: req.DLastName,
		VehicleNo: req.VehicleNo,
		Status:    status,
		Km:        req.Km,
		Litre:     req.Litre,
		Splace:    req.Splace,
		Dplace:    req.Dplace,
	}

	created, err := s.fuelRepo.Create(fuel)
	if err != nil {
		return nil, err
	}

	date := formatDate(time.Now())
	driverName := strings.TrimSpace(fmt.Sprintf("%s %s", created.DName, created.DLastName))
	s.notifier.Dispatch(
		models.RoleFuelManager,
		nil,
		models.NotificationFuelRequest,
		"New Fuel Request",
		fmt.Sprintf("You have a new fuel request from %s on %s.", driverName, date),
		map[string]interface{}{
			"fuelId":     created.ID.Hex(),
			"driverName": driverName,
			"vehicleNo":  created.VehicleNo,
			"km":         created.Km,
			"splace":     created.Splace,
			"dplace":     created.Dplace,
		},
	)

	return created, nil
}

// UpdateFuelStatus resolves a pending request. Approvals and declines notify
// the requesting driver (resolved through the user directory by vehicle
// number) and the dean; any other status updates the document silently.
func (s *FuelService) UpdateFuelStatus(id string, rawStatus string, litre *float64) (*models.FuelRequest, error) {
	status, known := models.NormalizeFuelStatus(rawStatus)

	fuel, err := s.fuelRepo.UpdateStatus(id, status, litre)
	if err != nil {
		return nil, err
	}

	if !known {
		return fuel, nil
	}

	switch status {
	case models.FuelStatusApproved:
		s.notifyDecision(fuel, litre, true)
	case models.FuelStatusDeclined:
		s.notifyDecision(fuel, litre, false)
	}

	return fuel, nil
}

func (s *FuelService) notifyDecision(fuel *models.FuelRequest, litre *float64, approved bool) {
	driverEmail := s.resolveDriverEmail(fuel.VehicleNo)

	now := time.Now()
	date := formatDate(now)
	clock := formatTime(now)
	driverName := strings.TrimSpace(fmt.Sprintf("%s %s", fuel.DName, fuel.DLastName))

	allocated := float64(0)
	if litre != nil {
		allocated = *litre
	} else if fuel.Litre != nil {
		allocated = *fuel.Litre
	}

	if approved {
		s.notifier.Dispatch(
			models.RoleDriver,
			driverEmail,
			models.NotificationFuelApproved,
			"Fuel Request Approved",
			fmt.Sprintf("Your fuel request has been approved on %s at %s. %.0f liters allocated for your mission from %s to %s.", date, clock, allocated, fuel.Splace, fuel.Dplace),
			map[string]interface{}{
				"fuelId":    fuel.ID.Hex(),
				"litre":     allocated,
				"vehicleNo": fuel.VehicleNo,
				"splace":    fuel.Splace,
				"dplace":    fuel.Dplace,
				"date":      date,
				"time":      clock,
			},
		)

		s.notifier.Dispatch(
			models.RoleDean,
			nil,
			models.NotificationFuelApproved,
			"Fuel Request Approved",
			fmt.Sprintf("Fuel request from %s (%s) was approved on %s at %s.", driverName, fuel.VehicleNo, date, clock),
			map[string]interface{}{
				"fuelId":     fuel.ID.Hex(),
				"driverName": driverName,
				"vehicleNo":  fuel.VehicleNo,
				"litre":      allocated,
				"date":       date,
				"time":       clock,
			},
		)
		return
	}

	s.notifier.Dispatch(
		models.RoleDriver,
		driverEmail,
		models.NotificationFuelDeclined,
		"Fuel Request Declined",
		fmt.Sprintf("Your fuel request has been declined on %s at %s. Please contact the fuel manager for more information.", date, clock),
		map[string]interface{}{
			"fuelId":    fuel.ID.Hex(),
			"vehicleNo": fuel.VehicleNo,
			"date":      date,
			"time":      clock,
		},
	)

	s.notifier.Dispatch(
		models.RoleDean,
		nil,
		models.NotificationFuelDeclined,
		"Fuel Request Declined",
		fmt.Sprintf("Fuel request from %s (%s) was declined on %s at %s.", driverName, fuel.VehicleNo, date, clock),
		map[string]interface{}{
			"fuelId":     fuel.ID.Hex(),
			"driverName": driverName,
			"vehicleNo":  fuel.VehicleNo,
			"date":       date,
			"time":       clock,
		},
	)
}

// resolveDriverEmail looks up the driver registered for the vehicle. The
// lookup is fallible; when no driver is found the notification degrades to a
// role-wide entry, matching how missing directory records always behaved.
func (s *FuelService) resolveDriverEmail(vehicleNo string) *string {
	driver, err := s.userRepo.FindDriverByVehicleNo(vehicleNo)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			log.WithField("vehicleNo", vehicleNo).WithError(err).Warn("Driver lookup failed")
		}
		return nil
	}
	email := driver.Email
	return &email
}

func (s *FuelService) GetAllFuelRequests() ([]*models.FuelRequest, error) {
	return s.fuelRepo.FindAll()
}

func (s *FuelService) GetReviewingFuelRequests() ([]*models.FuelRequest, error) {
	return s.fuelRepo.FindByStatus(models.FuelStatusReviewing)
}

func (s *FuelService) GetFuelRequestsByVehicleNo(vehicleNo string) ([]*models.FuelRequest, error) {
	return s.fuelRepo.FindByVehicleNo(vehicleNo)
}

func (s *FuelService) DeleteFuelRequest(id string) error {
	return s.fuelRepo.Delete(id)
}
