package controllers

import (
	"strconv"
	"time"

	"cfaprep/backend/config"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// GetUsers lists accounts with pagination.
func (ac *AdminController) GetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	ac.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := ac.DB.Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		result = append(result, fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"role":       user.Role,
			"plan":       user.Plan,
			"created_at": user.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result, fiber.Map{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateUserRole promotes or demotes an account.
func (ac *AdminController) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	type RoleInput struct {
		Role string `json:"role"`
	}

	var input RoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Role != "student" && input.Role != "admin" {
		return utils.ValidationError(c, map[string]string{"role": "role must be student or admin"})
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	user.Role = input.Role
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":   user.ID,
		"role": user.Role,
	})
}

// GetErrorLogs lists recent server-side failures.
func (ac *AdminController) GetErrorLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var logs []models.ErrorLog
	if err := ac.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, logs)
}

// GetPlatformStats returns the admin dashboard counters.
func (ac *AdminController) GetPlatformStats(c *fiber.Ctx) error {
	var stats struct {
		TotalUsers     int64 `json:"total_users"`
		ActiveUsers    int64 `json:"active_users"`
		TotalTopics    int64 `json:"total_topics"`
		TotalQuestions int64 `json:"total_questions"`
		TotalAnswers   int64 `json:"total_answers"`
	}

	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	ac.DB.Model(&models.Activity{}).
		Where("type = ? AND created_at > ?", models.ActivityLogin, time.Now().AddDate(0, 0, -30)).
		Distinct("user_id").
		Count(&stats.ActiveUsers)
	ac.DB.Model(&models.Topic{}).Count(&stats.TotalTopics)
	ac.DB.Model(&models.Question{}).Count(&stats.TotalQuestions)
	ac.DB.Model(&models.Answer{}).Count(&stats.TotalAnswers)

	var answersLastWeek int64
	ac.DB.Model(&models.Answer{}).
		Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
		Count(&answersLastWeek)

	var revenue int64
	ac.DB.Model(&models.Payment{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_users":       stats.TotalUsers,
		"active_users":      stats.ActiveUsers,
		"total_topics":      stats.TotalTopics,
		"total_questions":   stats.TotalQuestions,
		"total_answers":     stats.TotalAnswers,
		"answers_last_week": answersLastWeek,
		"revenue":           revenue,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}
