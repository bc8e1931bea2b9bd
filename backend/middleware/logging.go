package middleware

import (
	"errors"
	"log"
	"time"

	"cfaprep/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Printf(
			"[%s] %s %s %s %d %v",
			time.Now().Format("2006-01-02 15:04:05"),
			c.IP(),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start),
		)

		return err
	}
}

// ErrorLogMiddleware records 5xx responses to the error_logs table so the
// admin console can list them. Logging failures are not allowed to break
// the request.
func ErrorLogMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// Returned errors reach the app error handler after this
			// middleware, so the response status is not written yet.
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		if status < 500 {
			return err
		}

		entry := models.ErrorLog{
			Method:     c.Method(),
			Path:       c.Path(),
			StatusCode: status,
		}
		if err != nil {
			entry.Message = err.Error()
		}
		if userID, ok := c.Locals(LocalUserID).(uint); ok {
			entry.UserID = &userID
		}
		db.Create(&entry)

		return err
	}
}
