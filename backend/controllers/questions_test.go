package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"cfaprep/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentViewHidesAnswerKey(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)
	topic, _ := seedTopicQuestion(t, db, "Ethics", "B")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/topics/%d/questions", topic.ID), nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var questions []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&questions))
	require.Len(t, questions, 1)

	assert.NotContains(t, questions[0], "correct_option")
	assert.NotContains(t, questions[0], "CorrectOption")
	assert.Contains(t, questions[0], "option_a")
	assert.Contains(t, questions[0], "option_d")
}

func TestQuestionFilters(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, user)
	topic, _ := seedTopicQuestion(t, db, "Ethics", "B")

	hard := models.Question{
		TopicID:       topic.ID,
		Text:          "Hard question",
		OptionA:       "Option A",
		OptionB:       "Option B",
		OptionC:       "Option C",
		CorrectOption: "A",
		Difficulty:    3,
	}
	require.NoError(t, db.Create(&hard).Error)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/topics/%d/questions?difficulty=3", topic.ID), nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var questions []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&questions))
	require.Len(t, questions, 1)
	assert.Equal(t, float64(3), questions[0]["difficulty"])
}

func TestCreateQuestionValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createUser(t, db, "admin", "admin")
	cookie := sessionCookie(t, cfg, admin)
	topic := models.Topic{Name: "Ethics"}
	require.NoError(t, db.Create(&topic).Error)

	// Bad option letter.
	resp := doJSON(t, app, http.MethodPost, "/api/admin/questions", fiber.Map{
		"topic_id":       topic.ID,
		"text":           "Question text",
		"option_a":       "A",
		"option_b":       "B",
		"option_c":       "C",
		"correct_option": "E",
		"difficulty":     1,
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Correct option D without a fourth option.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/questions", fiber.Map{
		"topic_id":       topic.ID,
		"text":           "Question text",
		"option_a":       "A",
		"option_b":       "B",
		"option_c":       "C",
		"correct_option": "D",
		"difficulty":     1,
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Difficulty out of range.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/questions", fiber.Map{
		"topic_id":       topic.ID,
		"text":           "Question text",
		"option_a":       "A",
		"option_b":       "B",
		"option_c":       "C",
		"correct_option": "A",
		"difficulty":     5,
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Valid three-option question.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/questions", fiber.Map{
		"topic_id":       topic.ID,
		"text":           "Question text",
		"option_a":       "A",
		"option_b":       "B",
		"option_c":       "C",
		"correct_option": "A",
		"difficulty":     2,
	}, cookie)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestPracticeSetResolvesQuestions(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createUser(t, db, "admin", "admin")
	adminCookie := sessionCookie(t, cfg, admin)
	topic, q1 := seedTopicQuestion(t, db, "Ethics", "B")

	q2 := models.Question{
		TopicID:       topic.ID,
		Text:          "Second question",
		OptionA:       "Option A",
		OptionB:       "Option B",
		OptionC:       "Option C",
		CorrectOption: "C",
		Difficulty:    1,
	}
	require.NoError(t, db.Create(&q2).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/practice-sets", fiber.Map{
		"topic_id":     topic.ID,
		"title":        "Ethics warm-up",
		"question_ids": []uint{q2.ID, q1.ID},
	}, adminCookie)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	setID := data["ID"].(float64)

	student := createUser(t, db, "candidate", "student")
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/practice-sets/%.0f", setID), nil, sessionCookie(t, cfg, student))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var set map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&set))
	questions := set["questions"].([]interface{})
	require.Len(t, questions, 2)

	// Curated ordering is preserved.
	first := questions[0].(map[string]interface{})
	assert.Equal(t, float64(q2.ID), first["id"])
	assert.NotContains(t, first, "correct_option")
}

func TestPracticeSetWithUnreadableQuestionIDs(t *testing.T) {
	app, db, cfg := newTestApp(t)
	student := createUser(t, db, "candidate", "student")
	cookie := sessionCookie(t, cfg, student)
	topic, _ := seedTopicQuestion(t, db, "Ethics", "B")

	set := models.PracticeSet{
		TopicID:     topic.ID,
		Title:       "Broken set",
		QuestionIDs: "not-json",
	}
	require.NoError(t, db.Create(&set).Error)

	// The listing stays up and reports the set as empty.
	resp := doJSON(t, app, http.MethodGet, "/api/practice-sets", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sets []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sets))
	require.Len(t, sets, 1)
	assert.Equal(t, float64(0), sets[0]["question_count"])

	// The details endpoint reports the failure instead of an empty set.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/practice-sets/%d", set.ID), nil, cookie)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
