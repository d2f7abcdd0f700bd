package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "teamtrack/controllers"
	"teamtrack/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/register", controller.Register)
	auth.Post("/login", middleware.LoginRateLimiter(), controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", controller.Logout)
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	commentController := controller.NewCommentController(db, log.New(os.Stdout, "COMMENT: ", log.LstdFlags))
	attendanceController := controller.NewAttendanceController(db, log.New(os.Stdout, "ATTENDANCE: ", log.LstdFlags))
	meetingController := controller.NewMeetingController(db, log.New(os.Stdout, "MEETING: ", log.LstdFlags))
	notificationController := controller.NewNotificationController(db, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Profile
	api.Put("/profile", controller.UpdateProfile)

	// Task routes
	task := api.Group("/tasks")
	task.Get("/", taskController.GetTasks)
	task.Post("/", taskController.CreateTask)
	task.Get("/:id", taskController.GetTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Delete("/:id", taskController.DeleteTask)
	task.Post("/:id/status", taskController.UpdateTaskStatus)
	task.Get("/:id/comments", commentController.GetComments)
	task.Post("/:id/comments", commentController.AddComment)

	// Attendance routes
	attendance := api.Group("/attendance")
	attendance.Get("/", attendanceController.GetAttendance)
	attendance.Post("/mark", attendanceController.MarkAttendance)

	// Meeting routes
	meeting := api.Group("/meetings")
	meeting.Get("/", meetingController.GetMeetings)
	meeting.Post("/", meetingController.CreateMeeting)
	meeting.Get("/:id", meetingController.GetMeeting)
	meeting.Post("/:id/attendance", meetingController.MarkMeetingAttendance)

	// Notification routes
	notification := api.Group("/notifications")
	notification.Get("/", notificationController.GetNotifications)
	notification.Post("/read-all", notificationController.MarkAllRead)
	notification.Post("/:id/read", notificationController.MarkRead)

	// Dashboard routes
	api.Get("/dashboard/stats", dashboardController.GetDashboardStats)

	// Stored comment attachments
	app.Get("/media/*", middleware.Protected(), controller.ServeMedia)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Operational probes
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error", "database": "unavailable",
			})
		}
		if err := sqlDB.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error", "database": "down",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "up"})
	})

	app.Get("/keep-alive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
