package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"transport-backend/internal/services"
	"transport-backend/internal/testsupport"
	"transport-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMissionRouter() (*gin.Engine, *testsupport.NotificationRepo) {
	gin.SetMode(gin.TestMode)

	missionRepo := testsupport.NewMissionRepo()
	notificationRepo := testsupport.NewNotificationRepo()
	notifier := services.NewNotificationService(notificationRepo)
	handler := NewMissionHandler(services.NewMissionService(missionRepo, notifier))

	router := gin.New()
	deployer := router.Group("/api/v1/deployer")
	{
		deployer.POST("", handler.CreateMission)
		deployer.GET("/deploy", handler.GetAllMissions)
		deployer.PATCH("/acknowledge/:id", handler.AcknowledgeMission)
		deployer.GET("/:email", handler.GetMissionByEmail)
		deployer.DELETE("/delete/:email", handler.DeleteMissionByEmail)
	}
	return router, notificationRepo
}

func missionPayload() map[string]interface{} {
	return map[string]interface{}{
		"slat":       "9.0320",
		"slong":      "38.7469",
		"dlat":       "8.9806",
		"dlong":      "38.7578",
		"email":      "driver@example.com",
		"firstName":  "Abel",
		"lastName":   "Tesfaye",
		"splace":     "Main Campus",
		"dplace":     "North Depot",
		"km":         42,
		"deployedBy": "deployer@example.com",
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateMissionEndpoint(t *testing.T) {
	router, _ := newMissionRouter()

	w := postJSON(t, router, "/api/v1/deployer", missionPayload())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "driver@example.com", data["email"])
	assert.Equal(t, false, data["acknowledged"])
}

func TestCreateMissionEndpointMissingFields(t *testing.T) {
	router, _ := newMissionRouter()

	payload := missionPayload()
	delete(payload, "splace")
	delete(payload, "km")

	w := postJSON(t, router, "/api/v1/deployer", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Please fill in all fields", resp.Message)

	fields, ok := resp.Error.([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"splace", "km"}, fields)
}

func TestCreateMissionEndpointConflict(t *testing.T) {
	router, _ := newMissionRouter()

	w := postJSON(t, router, "/api/v1/deployer", missionPayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/api/v1/deployer", missionPayload())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Driver already has an active mission", resp.Message)
}

func TestAcknowledgeMissionEndpoint(t *testing.T) {
	router, _ := newMissionRouter()

	w := postJSON(t, router, "/api/v1/deployer", missionPayload())
	require.Equal(t, http.StatusOK, w.Code)

	var created utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	missionID := created.Data.(map[string]interface{})["id"].(string)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/deployer/acknowledge/"+missionID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["acknowledged"])
}

func TestAcknowledgeMissionEndpointNotFound(t *testing.T) {
	router, _ := newMissionRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/deployer/acknowledge/64b0c8c2e4b0f2a1d3e4f5a6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMissionByEmailEndpointNotFound(t *testing.T) {
	router, _ := newMissionRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deployer/missing@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMissionEndpoint(t *testing.T) {
	router, _ := newMissionRouter()

	w := postJSON(t, router, "/api/v1/deployer", missionPayload())
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/deployer/delete/driver@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/deployer/driver@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
