package controllers

import (
	"math"

	"cfaprep/backend/config"
	"cfaprep/backend/middleware"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// percentage returns round-half-up 100*correct/attempted, 0 when nothing
// was attempted.
func percentage(correct, attempted int) int {
	if attempted == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(attempted)))
}

// average returns round-half-up total/count, 0 when count is zero.
func average(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// GetAnalytics godoc
// @Summary Get the caller's performance analytics
// @Description Returns the overall summary, per-topic performance and recent activity
// @Tags analytics
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics [get]
func (ac *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var topics []models.Topic
	if err := ac.DB.Order("display_order, id").Find(&topics).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var rows []models.TopicProgress
	if err := ac.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	progressByTopic := make(map[uint]models.TopicProgress, len(rows))
	for _, row := range rows {
		progressByTopic[row.TopicID] = row
	}

	var summary models.AnalyticsSummary
	performance := make([]models.TopicPerformance, 0, len(topics))
	for _, topic := range topics {
		row := progressByTopic[topic.ID] // zero row when no progress yet

		performance = append(performance, models.TopicPerformance{
			TopicID:            topic.ID,
			TopicName:          topic.Name,
			QuestionsAttempted: row.QuestionsAttempted,
			QuestionsCorrect:   row.QuestionsCorrect,
			Accuracy:           percentage(row.QuestionsCorrect, row.QuestionsAttempted),
			AvgTimePerQuestion: average(row.TotalTimeSpent, row.QuestionsAttempted),
		})

		summary.QuestionsAttempted += row.QuestionsAttempted
		summary.QuestionsCorrect += row.QuestionsCorrect
		summary.TotalTimeSpent += row.TotalTimeSpent
	}
	summary.Accuracy = percentage(summary.QuestionsCorrect, summary.QuestionsAttempted)
	summary.HoursSpent = int(math.Round(float64(summary.TotalTimeSpent) / 3600))

	recent, err := ac.recentActivity(userID, c.QueryInt("limit", 10))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"summary":           summary,
		"topic_performance": performance,
		"recent_activity":   recent,
	})
}

func (ac *AnalyticsController) recentActivity(userID uint, limit int) ([]fiber.Map, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var activities []models.Activity
	if err := ac.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}

	topicNames := make(map[uint]string)
	var topics []models.Topic
	if err := ac.DB.Find(&topics).Error; err != nil {
		return nil, err
	}
	for _, topic := range topics {
		topicNames[topic.ID] = topic.Name
	}

	result := make([]fiber.Map, 0, len(activities))
	for _, activity := range activities {
		entry := fiber.Map{
			"id":         activity.ID,
			"type":       activity.Type,
			"detail":     activity.Detail,
			"created_at": activity.CreatedAt,
		}
		if activity.TopicID != nil {
			entry["topic_id"] = *activity.TopicID
			if name, ok := topicNames[*activity.TopicID]; ok {
				entry["topic_name"] = name
			}
		}
		result = append(result, entry)
	}

	return result, nil
}

// GetProgress godoc
// @Summary Get the caller's raw per-topic progress rows
// @Tags analytics
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (ac *AnalyticsController) GetProgress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var rows []models.TopicProgress
	if err := ac.DB.Where("user_id = ?", userID).Order("topic_id").Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, rows)
}
