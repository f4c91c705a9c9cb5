package services

import (
	"errors"
	"fmt"
	"time"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
)

// MissionService runs the assignment and acknowledgement steps of the
// transport workflow.
type MissionService struct {
	missionRepo repository.MissionRepository
	notifier    *NotificationService
}

func NewMissionService(missionRepo repository.MissionRepository, notifier *NotificationService) *MissionService {
	return &MissionService{
		missionRepo: missionRepo,
		notifier:    notifier,
	}
}

type CreateMissionRequest struct {
	Slat       string  `json:"slat"`
	Slong      string  `json:"slong"`
	Dlat       string  `json:"dlat"`
	Dlong      string  `json:"dlong"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Splace     string  `json:"splace"`
	Dplace     string  `json:"dplace"`
	Km         float64 `json:"km"`
	DeployedBy string  `json:"deployedBy,omitempty"`
}

func (r *CreateMissionRequest) missingFields() []string {
	var missing []string
	if r.Slat == "" {
		missing = append(missing, "slat")
	}
	if r.Slong == "" {
		missing = append(missing, "slong")
	}
	if r.Dlat == "" {
		missing = append(missing, "dlat")
	}
	if r.Dlong == "" {
		missing = append(missing, "dlong")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if r.LastName == "" {
		missing = append(missing, "lastName")
	}
	if r.Splace == "" {
		missing = append(missing, "splace")
	}
	if r.Dplace == "" {
		missing = append(missing, "dplace")
	}
	if r.Km == 0 {
		missing = append(missing, "km")
	}
	return missing
}

// CreateMission assigns a mission to a driver. A driver can hold at most one
// active mission; a second create for the same email is rejected, never
// overwritten. The pre-read gives the friendly error, the unique index on
// the collection closes the race between concurrent creates.
func (s *MissionService) CreateMission(req *CreateMissionRequest) (*models.Mission, error) {
	if missing := req.missingFields(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if _, err := s.missionRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrMissionConflict
	} else if !errors.Is(err, repository.ErrMissionNotFound) {
		return nil, err
	}

	mission := &models.Mission{
		Slat:       req.Slat,
		Slong:      req.Slong,
		Dlat:       req.Dlat,
		Dlong:      req.Dlong,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Splace:     req.Splace,
		Dplace:     req.Dplace,
		Km:         req.Km,
		DeployedBy: req.DeployedBy,
	}

	created, err := s.missionRepo.Create(mission)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMission) {
			return nil, ErrMissionConflict
		}
		return nil, err
	}

	driverEmail := created.Email
	s.notifier.Dispatch(
		models.RoleDriver,
		&driverEmail,
		models.NotificationMissionAssigned,
		"New Mission Assigned",
		fmt.Sprintf("You have been assigned a mission from %s to %s (%.0f km).", created.Splace, created.Dplace, created.Km),
		map[string]interface{}{
			"missionId": created.ID.Hex(),
			"splace":    created.Splace,
			"dplace":    created.Dplace,
			"km":        created.Km,
		},
	)

	return created, nil
}

// AcknowledgeMission marks the mission as accepted by its driver. The
// acknowledgement notice goes to the deployer who issued the mission when
// that identity was captured, otherwise to every vehicle deployer.
func (s *MissionService) AcknowledgeMission(id string) (*models.Mission, error) {
	mission, err := s.missionRepo.SetAcknowledged(id, time.Now())
	if err != nil {
		return nil, err
	}

	var recipient *string
	if mission.DeployedBy != "" {
		deployer := mission.DeployedBy
		recipient = &deployer
	}

	s.notifier.Dispatch(
		models.RoleVehicleDeployer,
		recipient,
		models.NotificationMissionAcknowledged,
		"Mission Acknowledged",
		fmt.Sprintf("%s %s has acknowledged the mission from %s to %s.", mission.FirstName, mission.LastName, mission.Splace, mission.Dplace),
		map[string]interface{}{
			"missionId":   mission.ID.Hex(),
			"driverName":  fmt.Sprintf("%s %s", mission.FirstName, mission.LastName),
			"driverEmail": mission.Email,
			"splace":      mission.Splace,
			"dplace":      mission.Dplace,
		},
	)

	return mission, nil
}

func (s *MissionService) GetMissionByEmail(email string) (*models.Mission, error) {
	return s.missionRepo.FindByEmail(email)
}

func (s *MissionService) GetAllMissions() ([]*models.Mission, error) {
	return s.missionRepo.FindAll()
}

func (s *MissionService) DeleteMissionByEmail(email string) error {
	return s.missionRepo.DeleteByEmail(email)
}
