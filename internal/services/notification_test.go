package services

import (
	"fmt"
	"testing"

	"transport-backend/internal/models"
	"transport-backend/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestGetFeedFiltersByRoleAndEmail(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	service := NewNotificationService(repo)

	service.Dispatch(models.RoleDriver, strptr("driver@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "mission for you", nil)
	service.Dispatch(models.RoleDriver, strptr("other@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "mission for someone else", nil)
	service.Dispatch(models.RoleDriver, nil, models.NotificationFuelDeclined, "Fuel Request Declined", "broadcast to drivers", nil)
	service.Dispatch(models.RoleDean, nil, models.NotificationFuelApproved, "Fuel Request Approved", "dean only", nil)

	feed, err := service.GetFeed(models.RoleDriver, "driver@example.com")
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 2, "own scoped entry plus the role broadcast")
	assert.Equal(t, int64(2), feed.UnreadCount)
	for _, n := range feed.Notifications {
		assert.Equal(t, models.RoleDriver, n.RecipientRole)
		if n.RecipientEmail != nil {
			assert.Equal(t, "driver@example.com", *n.RecipientEmail)
		}
	}
}

func TestGetFeedEmptyIsNotNil(t *testing.T) {
	service := NewNotificationService(testsupport.NewNotificationRepo())

	feed, err := service.GetFeed(models.RoleDean, "")
	require.NoError(t, err)
	assert.NotNil(t, feed.Notifications)
	assert.Empty(t, feed.Notifications)
	assert.Zero(t, feed.UnreadCount)
}

func TestGetFeedCapsAtFifty(t *testing.T) {
	service := NewNotificationService(testsupport.NewNotificationRepo())

	for i := 0; i < 60; i++ {
		service.Dispatch(models.RoleDean, nil, models.NotificationMissionCompleted, "Mission Completed", fmt.Sprintf("report %d", i), nil)
	}

	feed, err := service.GetFeed(models.RoleDean, "dean@example.com")
	require.NoError(t, err)
	assert.Len(t, feed.Notifications, 50)
	assert.Equal(t, int64(60), feed.UnreadCount, "the count covers entries beyond the feed cap")
}

func TestMarkAsReadDropsUnreadCount(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	service := NewNotificationService(repo)

	service.Dispatch(models.RoleDriver, strptr("driver@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "mission", nil)

	feed, err := service.GetFeed(models.RoleDriver, "driver@example.com")
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 1)

	read, err := service.MarkAsRead(feed.Notifications[0].ID.Hex())
	require.NoError(t, err)
	assert.True(t, read.Read)
	require.NotNil(t, read.ReadAt)

	feed, err = service.GetFeed(models.RoleDriver, "driver@example.com")
	require.NoError(t, err)
	assert.Zero(t, feed.UnreadCount)
}

func TestMarkAllAsReadCoversBroadcasts(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	service := NewNotificationService(repo)

	service.Dispatch(models.RoleDriver, strptr("driver@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "scoped", nil)
	service.Dispatch(models.RoleDriver, nil, models.NotificationFuelDeclined, "Fuel Request Declined", "broadcast", nil)
	service.Dispatch(models.RoleDean, nil, models.NotificationFuelApproved, "Fuel Request Approved", "other role", nil)

	require.NoError(t, service.MarkAllAsRead(models.RoleDriver, "driver@example.com"))

	feed, err := service.GetFeed(models.RoleDriver, "driver@example.com")
	require.NoError(t, err)
	assert.Zero(t, feed.UnreadCount)

	// The dean's feed is untouched.
	deanFeed, err := service.GetFeed(models.RoleDean, "dean@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deanFeed.UnreadCount)
}

func TestDispatchFailureIsDeadLettered(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	repo.FailCreates = true
	service := NewNotificationService(repo)

	service.Dispatch(models.RoleDean, nil, models.NotificationFuelApproved, "Fuel Request Approved", "will fail", nil)

	letters := service.DeadLetters()
	require.Len(t, letters, 1)
	assert.Equal(t, models.RoleDean, letters[0].RecipientRole)
	assert.Equal(t, models.NotificationFuelApproved, letters[0].Type)
	assert.NotEmpty(t, letters[0].Error)
	assert.False(t, letters[0].FailedAt.IsZero())
}

func TestDeadLetterBufferIsBounded(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	repo.FailCreates = true
	service := NewNotificationService(repo)

	for i := 0; i < deadLetterLimit+20; i++ {
		service.Dispatch(models.RoleDean, nil, models.NotificationMissionCompleted, "Mission Completed", fmt.Sprintf("attempt %d", i), nil)
	}

	letters := service.DeadLetters()
	assert.Len(t, letters, deadLetterLimit)
	// The buffer keeps the newest failures.
	assert.Contains(t, letters[len(letters)-1].Message, fmt.Sprintf("attempt %d", deadLetterLimit+19))
}

func TestDispatchFailureNeverPropagates(t *testing.T) {
	repo := testsupport.NewNotificationRepo()
	repo.FailCreates = true
	notifier := NewNotificationService(repo)

	missions := NewMissionService(testsupport.NewMissionRepo(), notifier)
	mission, err := missions.CreateMission(validMissionRequest())
	require.NoError(t, err, "a failed notification write must not fail the assignment")
	assert.NotNil(t, mission)
	assert.Len(t, notifier.DeadLetters(), 1)
}
