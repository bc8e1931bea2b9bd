package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"cfaprep/backend/config"
	"cfaprep/backend/middleware"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnswersController(db *gorm.DB, cfg *config.Config) *AnswersController {
	return &AnswersController{DB: db, Cfg: cfg}
}

type submitAnswerRequest struct {
	QuestionID uint   `json:"question_id"`
	UserOption string `json:"user_option"`
	TimeSpent  int    `json:"time_spent"`
	// Older SPA builds also send is_correct. Correctness is always derived
	// from the stored answer key; a client-supplied flag is ignored.
}

// SubmitAnswer godoc
// @Summary Submit an answer to a question
// @Description Records the submission and, on the first attempt at this question, updates topic progress and the activity log
// @Tags answers
// @Accept json
// @Produce json
// @Param answer body submitAnswerRequest true "Answer submission"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /answers [post]
func (ac *AnswersController) SubmitAnswer(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req submitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fieldErrors := map[string]string{}
	if req.QuestionID == 0 {
		fieldErrors["question_id"] = "question_id is required"
	}
	if req.UserOption != "A" && req.UserOption != "B" && req.UserOption != "C" && req.UserOption != "D" {
		fieldErrors["user_option"] = "user_option must be one of A, B, C, D"
	}
	if req.TimeSpent < 0 {
		fieldErrors["time_spent"] = "time_spent must be a non-negative integer"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	var question models.Question
	if err := ac.DB.First(&question, req.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !question.HasOption(req.UserOption) {
		return utils.ValidationError(c, map[string]string{
			"user_option": "question has no option " + req.UserOption,
		})
	}

	isCorrect := req.UserOption == question.CorrectOption

	answer := models.Answer{
		UserID:     userID,
		QuestionID: question.ID,
		UserOption: req.UserOption,
		IsCorrect:  isCorrect,
		TimeSpent:  req.TimeSpent,
	}

	var firstAttempt bool
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&models.Answer{}).
			Where("user_id = ? AND question_id = ?", userID, question.ID).
			Count(&prior).Error; err != nil {
			return err
		}
		firstAttempt = prior == 0

		// Every submission is recorded, repeats included.
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		// Only the first attempt at a question feeds the aggregates.
		if !firstAttempt {
			return nil
		}

		if err := upsertTopicProgress(tx, userID, question.TopicID, isCorrect, req.TimeSpent); err != nil {
			return err
		}

		return recordAnswerActivity(tx, userID, question.TopicID, question.ID, isCorrect, req.TimeSpent)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not record answer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"answer":        answer,
		"is_correct":    isCorrect,
		"first_attempt": firstAttempt,
	})
}

// upsertTopicProgress performs the insert-or-increment for the (user, topic)
// progress row in a single statement, so two concurrent first attempts in
// the same topic cannot lose an increment.
func upsertTopicProgress(tx *gorm.DB, userID, topicID uint, correct bool, timeSpent int) error {
	correctDelta := 0
	if correct {
		correctDelta = 1
	}
	now := time.Now()

	progress := models.TopicProgress{
		UserID:             userID,
		TopicID:            topicID,
		QuestionsAttempted: 1,
		QuestionsCorrect:   correctDelta,
		TotalTimeSpent:     timeSpent,
		LastUpdated:        now,
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_attempted": gorm.Expr("questions_attempted + ?", 1),
			"questions_correct":   gorm.Expr("questions_correct + ?", correctDelta),
			"total_time_spent":    gorm.Expr("total_time_spent + ?", timeSpent),
			"last_updated":        now,
			"updated_at":          now,
		}),
	}).Create(&progress).Error
}

func recordAnswerActivity(tx *gorm.DB, userID, topicID, questionID uint, correct bool, timeSpent int) error {
	detail, err := json.Marshal(fiber.Map{
		"question_id":   questionID,
		"is_correct":    correct,
		"time_spent":    timeSpent,
		"first_attempt": true,
	})
	if err != nil {
		return err
	}

	activity := models.Activity{
		UserID:  userID,
		Type:    models.ActivityQuestionAnswered,
		TopicID: &topicID,
		Detail:  string(detail),
	}
	return tx.Create(&activity).Error
}

// GetAnswers godoc
// @Summary Get the caller's answer history
// @Tags answers
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /answers [get]
func (ac *AnswersController) GetAnswers(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var answers []models.Answer
	if err := ac.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&answers).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, answers)
}
