package controllers

import (
	"errors"
	"strconv"

	"cfaprep/backend/config"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TopicsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTopicsController(db *gorm.DB, cfg *config.Config) *TopicsController {
	return &TopicsController{DB: db, Cfg: cfg}
}

// GetTopics lists every topic with its question count.
func (tc *TopicsController) GetTopics(c *fiber.Ctx) error {
	var topics []models.Topic
	if err := tc.DB.Order("display_order, id").Find(&topics).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	counts := make(map[uint]int64, len(topics))
	var rows []struct {
		TopicID uint
		Total   int64
	}
	tc.DB.Model(&models.Question{}).
		Select("topic_id, COUNT(*) as total").
		Group("topic_id").
		Scan(&rows)
	for _, row := range rows {
		counts[row.TopicID] = row.Total
	}

	result := make([]fiber.Map, 0, len(topics))
	for _, topic := range topics {
		result = append(result, fiber.Map{
			"id":             topic.ID,
			"name":           topic.Name,
			"description":    topic.Description,
			"display_order":  topic.DisplayOrder,
			"question_count": counts[topic.ID],
		})
	}

	return c.JSON(result)
}

// GetTopicDetails returns one topic with its chapters.
func (tc *TopicsController) GetTopicDetails(c *fiber.Ctx) error {
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	var topic models.Topic
	if err := tc.DB.Preload("Chapters", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order")
	}).First(&topic, topicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(topic)
}

// CreateTopic creates a new topic (admin only).
func (tc *TopicsController) CreateTopic(c *fiber.Ctx) error {
	type TopicInput struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}

	var input TopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.ValidationError(c, map[string]string{"name": "name is required"})
	}

	topic := models.Topic{
		Name:         input.Name,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
	}
	if err := tc.DB.Create(&topic).Error; err != nil {
		return utils.BadRequest(c, "Could not create topic")
	}

	return utils.Created(c, topic)
}

// UpdateTopic updates a topic (admin only).
func (tc *TopicsController) UpdateTopic(c *fiber.Ctx) error {
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	var topic models.Topic
	if err := tc.DB.First(&topic, topicID).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	type TopicInput struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
	}

	var input TopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != nil {
		topic.Name = *input.Name
	}
	if input.Description != nil {
		topic.Description = *input.Description
	}
	if input.DisplayOrder != nil {
		topic.DisplayOrder = *input.DisplayOrder
	}

	if err := tc.DB.Save(&topic).Error; err != nil {
		return utils.BadRequest(c, "Could not update topic")
	}

	return c.JSON(topic)
}

// DeleteTopic removes a topic (admin only).
func (tc *TopicsController) DeleteTopic(c *fiber.Ctx) error {
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	if err := tc.DB.Delete(&models.Topic{}, topicID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete topic")
	}

	return utils.NoContent(c)
}

// AddChapter creates a chapter inside a topic (admin only).
func (tc *TopicsController) AddChapter(c *fiber.Ctx) error {
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	var topic models.Topic
	if err := tc.DB.First(&topic, topicID).Error; err != nil {
		return utils.NotFound(c, "Topic not found")
	}

	type ChapterInput struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		SequenceOrder int    `json:"sequence_order"`
	}

	var input ChapterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title is required"})
	}

	chapter := models.Chapter{
		TopicID:       topic.ID,
		Title:         input.Title,
		Description:   input.Description,
		SequenceOrder: input.SequenceOrder,
	}
	if err := tc.DB.Create(&chapter).Error; err != nil {
		return utils.BadRequest(c, "Could not create chapter")
	}

	return utils.Created(c, chapter)
}

// UpdateChapter updates a chapter (admin only).
func (tc *TopicsController) UpdateChapter(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var chapter models.Chapter
	if err := tc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	type ChapterInput struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		SequenceOrder *int    `json:"sequence_order"`
	}

	var input ChapterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != nil {
		chapter.Title = *input.Title
	}
	if input.Description != nil {
		chapter.Description = *input.Description
	}
	if input.SequenceOrder != nil {
		chapter.SequenceOrder = *input.SequenceOrder
	}

	if err := tc.DB.Save(&chapter).Error; err != nil {
		return utils.BadRequest(c, "Could not update chapter")
	}

	return c.JSON(chapter)
}

// DeleteChapter removes a chapter (admin only).
func (tc *TopicsController) DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	if err := tc.DB.Delete(&models.Chapter{}, chapterID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete chapter")
	}

	return utils.NoContent(c)
}
