package services

import (
	"testing"

	"transport-backend/internal/repository"
	"transport-backend/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowFixture struct {
	workflow      *WorkflowService
	missions      *MissionService
	fuel          *FuelService
	users         *testsupport.UserRepo
	reports       *testsupport.ReportRepo
	notifications *testsupport.NotificationRepo
}

func newWorkflowFixture() *workflowFixture {
	missionRepo := testsupport.NewMissionRepo()
	fuelRepo := testsupport.NewFuelRepo()
	reportRepo := testsupport.NewReportRepo()
	userRepo := testsupport.NewUserRepo()
	notificationRepo := testsupport.NewNotificationRepo()

	notifier := NewNotificationService(notificationRepo)
	reportService := NewReportService(reportRepo, userRepo, notifier)

	return &workflowFixture{
		workflow:      NewWorkflowService(reportService, missionRepo, fuelRepo),
		missions:      NewMissionService(missionRepo, notifier),
		fuel:          NewFuelService(fuelRepo, userRepo, notifier),
		users:         userRepo,
		reports:       reportRepo,
		notifications: notificationRepo,
	}
}

func TestCompleteMissionClearsMissionAndFuelRequest(t *testing.T) {
	fx := newWorkflowFixture()
	seedDriver(t, fx.users, "driver@example.com", "V-100")

	_, err := fx.missions.CreateMission(validMissionRequest())
	require.NoError(t, err)
	fuel := fileFuelRequest(t, fx.fuel)

	result, err := fx.workflow.CompleteMission(&CompleteMissionRequest{
		Report: *validReportRequest(),
		Email:  "driver@example.com",
		FuelID: fuel.ID.Hex(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Report)
	assert.True(t, result.MissionDeleted)
	assert.True(t, result.FuelRequestDeleted)

	_, err = fx.missions.GetMissionByEmail("driver@example.com")
	assert.ErrorIs(t, err, repository.ErrMissionNotFound)

	remaining, err := fx.fuel.GetAllFuelRequests()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	reports, err := fx.reports.FindAll()
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestCompleteMissionWithoutFuelRequest(t *testing.T) {
	fx := newWorkflowFixture()

	_, err := fx.missions.CreateMission(validMissionRequest())
	require.NoError(t, err)

	result, err := fx.workflow.CompleteMission(&CompleteMissionRequest{
		Report: *validReportRequest(),
		Email:  "driver@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.MissionDeleted)
	assert.False(t, result.FuelRequestDeleted)
}

func TestCompleteMissionRetryIsIdempotent(t *testing.T) {
	fx := newWorkflowFixture()
	seedDriver(t, fx.users, "driver@example.com", "V-100")

	_, err := fx.missions.CreateMission(validMissionRequest())
	require.NoError(t, err)
	fuel := fileFuelRequest(t, fx.fuel)

	req := &CompleteMissionRequest{
		Report: *validReportRequest(),
		Email:  "driver@example.com",
		FuelID: fuel.ID.Hex(),
	}

	first, err := fx.workflow.CompleteMission(req)
	require.NoError(t, err)
	assert.True(t, first.MissionDeleted)
	assert.True(t, first.FuelRequestDeleted)

	// Retrying after the cleanup already ran still succeeds; the deletes
	// tolerate the missing documents and report that nothing was removed.
	second, err := fx.workflow.CompleteMission(req)
	require.NoError(t, err)
	assert.False(t, second.MissionDeleted)
	assert.False(t, second.FuelRequestDeleted)

	reports, err := fx.reports.FindAll()
	require.NoError(t, err)
	assert.Len(t, reports, 2, "each completion call appends its own report")
}
