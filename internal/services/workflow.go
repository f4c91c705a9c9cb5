package services

import (
	"errors"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"

	log "github.com/sirupsen/logrus"
)

// WorkflowService owns the terminal transition of the mission lifecycle:
// completing a mission files the report, releases the driver's mission slot
// and consumes the fuel request, returning the entity set to idle for that
// driver and vehicle.
type WorkflowService struct {
	reportService *ReportService
	missionRepo   repository.MissionRepository
	fuelRepo      repository.FuelRequestRepository
}

func NewWorkflowService(reportService *ReportService, missionRepo repository.MissionRepository, fuelRepo repository.FuelRequestRepository) *WorkflowService {
	return &WorkflowService{
		reportService: reportService,
		missionRepo:   missionRepo,
		fuelRepo:      fuelRepo,
	}
}

type CompleteMissionRequest struct {
	Report CreateReportRequest `json:"report"`
	Email  string              `json:"email" validate:"required,email"`
	FuelID string              `json:"fuelId,omitempty"`
}

// CompleteMissionResult reports which cleanup steps ran. A false flag means
// the entity was already gone or its delete failed; retrying the operation
// or the individual delete endpoints converges either way.
type CompleteMissionResult struct {
	Report             *models.Report `json:"report"`
	MissionDeleted     bool           `json:"missionDeleted"`
	FuelRequestDeleted bool           `json:"fuelRequestDeleted"`
}

// CompleteMission is deliberately not transactional: the report insert is the
// commit point, and the deletes behind it tolerate already-missing documents
// so a partial failure can be retried without duplicating side effects other
// than the completion notifications.
func (s *WorkflowService) CompleteMission(req *CompleteMissionRequest) (*CompleteMissionResult, error) {
	report, err := s.reportService.CreateReport(&req.Report)
	if err != nil {
		return nil, err
	}

	result := &CompleteMissionResult{Report: report}

	if err := s.missionRepo.DeleteByEmail(req.Email); err != nil {
		if !errors.Is(err, repository.ErrMissionNotFound) {
			log.WithField("email", req.Email).WithError(err).Error("Failed to delete mission during completion")
		}
	} else {
		result.MissionDeleted = true
	}

	if req.FuelID != "" {
		if err := s.fuelRepo.Delete(req.FuelID); err != nil {
			if !errors.Is(err, repository.ErrFuelRequestNotFound) && !errors.Is(err, repository.ErrInvalidID) {
				log.WithField("fuelId", req.FuelID).WithError(err).Error("Failed to delete fuel request during completion")
			}
		} else {
			result.FuelRequestDeleted = true
		}
	}

	return result, nil
}
