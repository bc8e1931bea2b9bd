package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"cfaprep/backend/config"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PracticeSetsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPracticeSetsController(db *gorm.DB, cfg *config.Config) *PracticeSetsController {
	return &PracticeSetsController{DB: db, Cfg: cfg}
}

// GetPracticeSets lists practice sets, optionally filtered by topic.
func (pc *PracticeSetsController) GetPracticeSets(c *fiber.Ctx) error {
	query := pc.DB.Model(&models.PracticeSet{})
	if topicID := c.QueryInt("topic_id", 0); topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}

	var sets []models.PracticeSet
	if err := query.Order("id").Find(&sets).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(sets))
	for _, set := range sets {
		var ids []uint
		if err := json.Unmarshal([]byte(set.QuestionIDs), &ids); err != nil {
			// A corrupt row should not take the whole listing down.
			log.Printf("practice set %d has unreadable question_ids: %v", set.ID, err)
			ids = nil
		}

		result = append(result, fiber.Map{
			"id":             set.ID,
			"topic_id":       set.TopicID,
			"title":          set.Title,
			"description":    set.Description,
			"question_count": len(ids),
		})
	}

	return c.JSON(result)
}

// GetPracticeSetDetails returns one practice set with its questions
// resolved into student views.
func (pc *PracticeSetsController) GetPracticeSetDetails(c *fiber.Ctx) error {
	setID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid practice set ID")
	}

	var set models.PracticeSet
	if err := pc.DB.First(&set, setID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Practice set not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var ids []uint
	if err := json.Unmarshal([]byte(set.QuestionIDs), &ids); err != nil {
		return utils.InternalServerError(c, "Could not read practice set")
	}

	var questions []models.Question
	if len(ids) > 0 {
		if err := pc.DB.Where("id IN ?", ids).Find(&questions).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	// Keep the curated ordering from the stored ID list.
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	views := make([]fiber.Map, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			views = append(views, studentView(q))
		}
	}

	return c.JSON(fiber.Map{
		"id":          set.ID,
		"topic_id":    set.TopicID,
		"title":       set.Title,
		"description": set.Description,
		"questions":   views,
	})
}

type practiceSetInput struct {
	TopicID     uint   `json:"topic_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	QuestionIDs []uint `json:"question_ids"`
}

// CreatePracticeSet creates a curated question bundle (admin only).
func (pc *PracticeSetsController) CreatePracticeSet(c *fiber.Ctx) error {
	var input practiceSetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fieldErrors := map[string]string{}
	if input.TopicID == 0 {
		fieldErrors["topic_id"] = "topic_id is required"
	}
	if input.Title == "" {
		fieldErrors["title"] = "title is required"
	}
	if len(input.QuestionIDs) == 0 {
		fieldErrors["question_ids"] = "question_ids must not be empty"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	var topic models.Topic
	if err := pc.DB.First(&topic, input.TopicID).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	encoded, _ := json.Marshal(input.QuestionIDs)
	set := models.PracticeSet{
		TopicID:     input.TopicID,
		Title:       input.Title,
		Description: input.Description,
		QuestionIDs: string(encoded),
	}
	if err := pc.DB.Create(&set).Error; err != nil {
		return utils.BadRequest(c, "Could not create practice set")
	}

	return utils.Created(c, set)
}

// UpdatePracticeSet updates a practice set (admin only).
func (pc *PracticeSetsController) UpdatePracticeSet(c *fiber.Ctx) error {
	setID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid practice set ID")
	}

	var set models.PracticeSet
	if err := pc.DB.First(&set, setID).Error; err != nil {
		return utils.NotFound(c, "Practice set not found")
	}

	var input practiceSetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		set.Title = input.Title
	}
	if input.Description != "" {
		set.Description = input.Description
	}
	if len(input.QuestionIDs) > 0 {
		encoded, _ := json.Marshal(input.QuestionIDs)
		set.QuestionIDs = string(encoded)
	}

	if err := pc.DB.Save(&set).Error; err != nil {
		return utils.BadRequest(c, "Could not update practice set")
	}

	return c.JSON(set)
}

// DeletePracticeSet removes a practice set (admin only).
func (pc *PracticeSetsController) DeletePracticeSet(c *fiber.Ctx) error {
	setID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid practice set ID")
	}

	if err := pc.DB.Delete(&models.PracticeSet{}, setID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete practice set")
	}

	return utils.NoContent(c)
}
