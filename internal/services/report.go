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

// ReportService appends mission completion records and fans the completion
// notice out to the deployer, fuel manager and dean dashboards.
type ReportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	notifier   *NotificationService
}

func NewReportService(reportRepo repository.ReportRepository, userRepo repository.UserRepository, notifier *NotificationService) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

type CreateReportRequest struct {
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName"`
	VehicleNo  string  `json:"vehicleNo" validate:"required"`
	Km         float64 `json:"km" validate:"required"`
	Litre      float64 `json:"litre" validate:"required"`
	DestStatus string  `json:"destStatus"`
	Splace     string  `json:"splace"`
	Dplace     string  `json:"dplace"`
}

// CreateReport appends the completion record, then notifies each role with a
// message shaped for its dashboard. A destination reached successfully also
// closes the loop back to the driver.
func (s *ReportService) CreateReport(req *CreateReportRequest) (*models.Report, error) {
	report := &models.Report{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		VehicleNo:  req.VehicleNo,
		Km:         req.Km,
		Litre:      req.Litre,
		DestStatus: req.DestStatus,
		Splace:     req.Splace,
		Dplace:     req.Dplace,
	}

	saved, err := s.reportRepo.Create(report)
	if err != nil {
		return nil, err
	}

	driverEmail := s.resolveDriverEmail(saved.VehicleNo)
	driverName := strings.TrimSpace(fmt.Sprintf("%s %s", saved.FirstName, saved.LastName))
	date := formatDate(time.Now())

	s.notifier.Dispatch(
		models.RoleVehicleDeployer,
		nil,
		models.NotificationMissionCompleted,
		"Mission Completed",
		fmt.Sprintf("%s has completed the mission from %s to %s on %s.", driverName, saved.Splace, saved.Dplace, date),
		map[string]interface{}{
			"reportId":    saved.ID.Hex(),
			"driverName":  driverName,
			"driverEmail": emailOrEmpty(driverEmail),
			"vehicleNo":   saved.VehicleNo,
			"km":          saved.Km,
			"litre":       saved.Litre,
			"splace":      saved.Splace,
			"dplace":      saved.Dplace,
			"date":        date,
		},
	)

	s.notifier.Dispatch(
		models.RoleFuelManager,
		nil,
		models.NotificationMissionCompleted,
		"Mission Completed",
		fmt.Sprintf("%s has completed a mission on %s. Fuel consumption: %.0f liters for %.0f km.", driverName, date, saved.Litre, saved.Km),
		map[string]interface{}{
			"reportId":   saved.ID.Hex(),
			"driverName": driverName,
			"vehicleNo":  saved.VehicleNo,
			"km":         saved.Km,
			"litre":      saved.Litre,
			"date":       date,
		},
	)

	s.notifier.Dispatch(
		models.RoleDean,
		nil,
		models.NotificationMissionCompleted,
		"Mission Completed",
		fmt.Sprintf("%s completed a mission from %s to %s on %s.", driverName, saved.Splace, saved.Dplace, date),
		map[string]interface{}{
			"reportId":   saved.ID.Hex(),
			"driverName": driverName,
			"vehicleNo":  saved.VehicleNo,
			"km":         saved.Km,
			"litre":      saved.Litre,
			"splace":     saved.Splace,
			"dplace":     saved.Dplace,
			"date":       date,
		},
	)

	if req.DestStatus == "successed" {
		s.notifier.Dispatch(
			models.RoleDriver,
			driverEmail,
			models.NotificationFuelApproved,
			"Fuel Request Approved",
			"Your fuel request has been approved. Mission completed successfully.",
			map[string]interface{}{
				"reportId":  saved.ID.Hex(),
				"vehicleNo": saved.VehicleNo,
				"litre":     saved.Litre,
			},
		)
	}

	return saved, nil
}

func (s *ReportService) resolveDriverEmail(vehicleNo string) *string {
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

func emailOrEmpty(email *string) string {
	if email == nil {
		return ""
	}
	return *email
}

func (s *ReportService) UpdateDestStatus(id string, destStatus string) (*models.Report, error) {
	return s.reportRepo.UpdateDestStatus(id, destStatus)
}

func (s *ReportService) GetAllReports() ([]*models.Report, error) {
	return s.reportRepo.FindAll()
}

func (s *ReportService) GetReportsByVehicleNo(vehicleNo string) ([]*models.Report, error) {
	return s.reportRepo.FindByVehicleNo(vehicleNo)
}
