package routes

import (
	"cfaprep/backend/config"
	"cfaprep/backend/controllers"
	"cfaprep/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware()

	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Put("/api/user/password", authMiddleware, userController.ChangePassword)

	// Topic catalog
	topicsController := controllers.NewTopicsController(db, cfg)
	questionsController := controllers.NewQuestionsController(db, cfg)
	topics := app.Group("/api/topics", authMiddleware)
	topics.Get("/", topicsController.GetTopics)
	topics.Get("/:id", topicsController.GetTopicDetails)
	topics.Get("/:id/questions", questionsController.GetTopicQuestions)
	app.Get("/api/questions/:id", authMiddleware, questionsController.GetQuestion)

	// Answer submission and history
	answersController := controllers.NewAnswersController(db, cfg)
	app.Post("/api/answers", authMiddleware, answersController.SubmitAnswer)
	app.Get("/api/answers", authMiddleware, answersController.GetAnswers)

	// Analytics and progress
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	app.Get("/api/analytics", authMiddleware, analyticsController.GetAnalytics)
	app.Get("/api/progress", authMiddleware, analyticsController.GetProgress)

	// Practice sets
	practiceSetsController := controllers.NewPracticeSetsController(db, cfg)
	app.Get("/api/practice-sets", authMiddleware, practiceSetsController.GetPracticeSets)
	app.Get("/api/practice-sets/:id", authMiddleware, practiceSetsController.GetPracticeSetDetails)

	// Payments
	paymentsController := controllers.NewPaymentsController(db, cfg)
	app.Post("/api/payments/order", authMiddleware, paymentsController.CreateOrder)
	app.Post("/api/payments/verify", authMiddleware, paymentsController.VerifyPayment)
	app.Get("/api/payments", authMiddleware, paymentsController.GetPayments)

	// Admin routes for content management
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Post("/topics", topicsController.CreateTopic)
	admin.Put("/topics/:id", topicsController.UpdateTopic)
	admin.Delete("/topics/:id", topicsController.DeleteTopic)
	admin.Post("/topics/:id/chapters", topicsController.AddChapter)
	admin.Put("/chapters/:chapterId", topicsController.UpdateChapter)
	admin.Delete("/chapters/:chapterId", topicsController.DeleteChapter)
	admin.Post("/questions", questionsController.CreateQuestion)
	admin.Put("/questions/:id", questionsController.UpdateQuestion)
	admin.Delete("/questions/:id", questionsController.DeleteQuestion)
	admin.Post("/practice-sets", practiceSetsController.CreatePracticeSet)
	admin.Put("/practice-sets/:id", practiceSetsController.UpdatePracticeSet)
	admin.Delete("/practice-sets/:id", practiceSetsController.DeletePracticeSet)

	// Admin console
	adminController := controllers.NewAdminController(db, cfg)
	admin.Get("/users", adminController.GetUsers)
	admin.Put("/users/:id/role", adminController.UpdateUserRole)
	admin.Get("/error-logs", adminController.GetErrorLogs)
	admin.Get("/stats", adminController.GetPlatformStats)
}
