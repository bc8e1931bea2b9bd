package controllers_test

import (
	"net/http"
	"testing"

	"cfaprep/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsWithNoProgress(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)
	seedTopicQuestion(t, db, "Ethics", "B")

	resp := doJSON(t, app, http.MethodGet, "/api/analytics", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(0), summary["questions_attempted"])
	assert.Equal(t, float64(0), summary["accuracy"])
	assert.Equal(t, float64(0), summary["hours_spent"])

	performance := data["topic_performance"].([]interface{})
	require.Len(t, performance, 1)
	ethics := performance[0].(map[string]interface{})
	assert.Equal(t, "Ethics", ethics["topic_name"])
	assert.Equal(t, float64(0), ethics["accuracy"])
	assert.Equal(t, float64(0), ethics["avg_time_per_question"])
}

func TestAnalyticsRollup(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)

	ethics, _ := seedTopicQuestion(t, db, "Ethics", "B")

	// Seed an accumulated progress row directly: 2 of 3 correct, 90s total.
	require.NoError(t, db.Create(&models.TopicProgress{
		UserID:             user.ID,
		TopicID:            ethics.ID,
		QuestionsAttempted: 3,
		QuestionsCorrect:   2,
		TotalTimeSpent:     90,
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/analytics", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	performance := data["topic_performance"].([]interface{})
	require.Len(t, performance, 1)
	row := performance[0].(map[string]interface{})
	assert.Equal(t, float64(3), row["questions_attempted"])
	assert.Equal(t, float64(2), row["questions_correct"])
	assert.Equal(t, float64(67), row["accuracy"])
	assert.Equal(t, float64(30), row["avg_time_per_question"])

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(3), summary["questions_attempted"])
	assert.Equal(t, float64(67), summary["accuracy"])
	assert.Equal(t, float64(90), summary["total_time_spent"])
	assert.Equal(t, float64(0), summary["hours_spent"])
}

func TestAnalyticsRecentActivityEnrichment(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)
	_, question := seedTopicQuestion(t, db, "Ethics", "B")

	resp := doJSON(t, app, http.MethodPost, "/api/answers", fiber.Map{
		"question_id": question.ID,
		"user_option": "B",
		"time_spent":  20,
	}, cookie)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/analytics", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	recent := data["recent_activity"].([]interface{})
	require.NotEmpty(t, recent)
	entry := recent[0].(map[string]interface{})
	assert.Equal(t, models.ActivityQuestionAnswered, entry["type"])
	assert.Equal(t, "Ethics", entry["topic_name"])
}

func TestGetProgressRows(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)
	_, question := seedTopicQuestion(t, db, "Ethics", "B")

	resp := doJSON(t, app, http.MethodPost, "/api/answers", fiber.Map{
		"question_id": question.ID,
		"user_option": "C",
		"time_spent":  12,
	}, cookie)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/progress", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), row["QuestionsAttempted"])
	assert.Equal(t, float64(0), row["QuestionsCorrect"])
	assert.Equal(t, float64(12), row["TotalTimeSpent"])
}
