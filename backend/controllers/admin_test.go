package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"cfaprep/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerFailuresAreRecorded(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)

	// Break the progress table so the query path fails.
	require.NoError(t, db.Migrator().DropTable(&models.TopicProgress{}))

	resp := doJSON(t, app, http.MethodGet, "/api/progress", nil, cookie)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var entry models.ErrorLog
	require.NoError(t, db.Where("path = ?", "/api/progress").First(&entry).Error)
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, fiber.StatusInternalServerError, entry.StatusCode)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, user.ID, *entry.UserID)
}

func TestAdminErrorLogListing(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createUser(t, db, "admin", "admin")
	cookie := sessionCookie(t, cfg, admin)

	require.NoError(t, db.Create(&models.ErrorLog{
		Method:     http.MethodGet,
		Path:       "/api/progress",
		StatusCode: 500,
		Message:    "database gone away",
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/error-logs", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	entry := data[0].(map[string]interface{})
	assert.Equal(t, "/api/progress", entry["path"])
	assert.Equal(t, float64(500), entry["status_code"])
}

func TestAdminUserListing(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createUser(t, db, "admin", "admin")
	student := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, admin)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])

	// Promote the student and read the change back.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", student.ID), fiber.Map{
		"role": "admin",
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, db.First(&updated, student.ID).Error)
	assert.Equal(t, "admin", updated.Role)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", student.ID), fiber.Map{
		"role": "superuser",
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminPlatformStats(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createUser(t, db, "admin", "admin")
	student := createUser(t, db, "candidate", "student")
	_, question := seedTopicQuestion(t, db, "Ethics", "B")

	resp := doJSON(t, app, http.MethodPost, "/api/answers", fiber.Map{
		"question_id": question.ID,
		"user_option": "B",
		"time_spent":  20,
	}, sessionCookie(t, cfg, student))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/stats", nil, sessionCookie(t, cfg, admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_users"])
	assert.Equal(t, float64(1), data["total_topics"])
	assert.Equal(t, float64(1), data["total_questions"])
	assert.Equal(t, float64(1), data["total_answers"])
	assert.Equal(t, float64(1), data["answers_last_week"])
	assert.Equal(t, float64(0), data["revenue"])
}
