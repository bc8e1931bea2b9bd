package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cfaprep/backend/config"
	"cfaprep/backend/middleware"
	"cfaprep/backend/models"
	"cfaprep/backend/routes"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestApp builds the full route surface on top of a fresh in-memory
// sqlite database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "testsecret",
		SessionCookie:    "cfa_session",
		SessionHours:     1,
		PaymentKeyID:     "key_test",
		PaymentKeySecret: "paysecret",
	}

	app := fiber.New()
	app.Use(middleware.ErrorLogMiddleware(db))
	routes.SetupRoutes(app, db, cfg)

	return app, db, cfg
}

// createUser inserts a user with password "password123".
func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Plan:         "free",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// sessionCookie mints a session cookie for the given user.
func sessionCookie(t *testing.T, cfg *config.Config, user models.User) *http.Cookie {
	t.Helper()

	token, err := utils.GenerateSessionToken(user.ID, user.Role, cfg)
	require.NoError(t, err)
	return &http.Cookie{Name: cfg.SessionCookie, Value: token}
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// seedTopicQuestion creates a topic with one question whose correct option
// is the given letter.
func seedTopicQuestion(t *testing.T, db *gorm.DB, topicName, correct string) (models.Topic, models.Question) {
	t.Helper()

	topic := models.Topic{Name: topicName}
	require.NoError(t, db.Create(&topic).Error)

	optionD := "None of the above"
	question := models.Question{
		TopicID:       topic.ID,
		Text:          "Sample question for " + topicName,
		OptionA:       "Option A",
		OptionB:       "Option B",
		OptionC:       "Option C",
		OptionD:       &optionD,
		CorrectOption: correct,
		Difficulty:    1,
	}
	require.NoError(t, db.Create(&question).Error)

	return topic, question
}
