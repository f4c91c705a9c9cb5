package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"transport-backend/internal/models"
	"transport-backend/internal/services"
	"transport-backend/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationRouter() (*gin.Engine, *services.NotificationService, *testsupport.NotificationRepo) {
	gin.SetMode(gin.TestMode)

	repo := testsupport.NewNotificationRepo()
	service := services.NewNotificationService(repo)
	handler := NewNotificationHandler(service)

	router := gin.New()
	notifications := router.Group("/api/v1/notifications")
	{
		notifications.GET("", handler.GetNotifications)
		notifications.GET("/dead-letter", handler.GetDeadLetters)
		notifications.PATCH("/read-all", handler.MarkAllAsRead)
		notifications.PATCH("/read/:id", handler.MarkAsRead)
		notifications.DELETE("/:id", handler.DeleteNotification)
	}
	return router, service, repo
}

func strptr(s string) *string {
	return &s
}

func TestGetNotificationsEndpoint(t *testing.T) {
	router, service, _ := newNotificationRouter()

	service.Dispatch(models.RoleDriver, strptr("driver@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "scoped", nil)
	service.Dispatch(models.RoleDriver, nil, models.NotificationFuelDeclined, "Fuel Request Declined", "broadcast", nil)
	service.Dispatch(models.RoleDean, nil, models.NotificationFuelApproved, "Fuel Request Approved", "other role", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?role=driver&email=driver@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var feed services.Feed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Len(t, feed.Notifications, 2)
	assert.Equal(t, int64(2), feed.UnreadCount)
}

func TestGetNotificationsEndpointRequiresRole(t *testing.T) {
	router, _, _ := newNotificationRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNotificationsEndpointEmptyFeed(t *testing.T) {
	router, _, _ := newNotificationRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?role=dean", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The notifications field serializes as an array even when empty.
	assert.Contains(t, w.Body.String(), `"notifications":[]`)
}

func TestMarkAllAsReadEndpoint(t *testing.T) {
	router, service, _ := newNotificationRouter()

	service.Dispatch(models.RoleDriver, strptr("driver@example.com"), models.NotificationMissionAssigned, "New Mission Assigned", "scoped", nil)
	service.Dispatch(models.RoleDriver, nil, models.NotificationFuelDeclined, "Fuel Request Declined", "broadcast", nil)

	body, _ := json.Marshal(map[string]string{"role": "driver", "email": "driver@example.com"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/read-all", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/notifications?role=driver&email=driver@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var feed services.Feed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Zero(t, feed.UnreadCount)
}

func TestMarkAllAsReadEndpointRequiresRole(t *testing.T) {
	router, _, _ := newNotificationRouter()

	body, _ := json.Marshal(map[string]string{"email": "driver@example.com"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/read-all", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAsReadEndpointNotFound(t *testing.T) {
	router, _, _ := newNotificationRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/read/64b0c8c2e4b0f2a1d3e4f5a6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeadLetterEndpoint(t *testing.T) {
	router, service, repo := newNotificationRouter()

	repo.FailCreates = true
	service.Dispatch(models.RoleDean, nil, models.NotificationFuelApproved, "Fuel Request Approved", "will fail", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/dead-letter", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fuel_approved")
	assert.Contains(t, w.Body.String(), "will fail")
}
