package routes

import (
	"reminder-app/src/domain"
	"reminder-app/src/interface/handler"
	"reminder-app/src/middleware"
	"reminder-app/src/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	reminderHandler *handler.ReminderHandler,
	projectHandler *handler.ProjectHandler,
	patternHandler *handler.PatternHandler,
	jwtService service.JWTService,
	userRepo domain.UserRepository,
) {
	// パブリックルートのグループ化
	api := r.Group("/api")
	api.Use(middleware.LoggerMiddleware())
	api.Use(middleware.CORSMiddleware())
	api.Use(middleware.RateLimitMiddleware())

	// 認証エンドポイント(トークン不要)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register) // POST /api/auth/register
		auth.POST("/login", authHandler.Login)       // POST /api/auth/login
		auth.POST("/refresh", authHandler.Refresh)   // POST /api/auth/refresh
	}

	authRequired := middleware.AuthMiddleware(jwtService, userRepo)

	api.GET("/auth/me", authRequired, authHandler.Me) // GET /api/auth/me

	// 認証が必要なリマインダーAPIルート
	reminders := api.Group("/reminders")
	reminders.Use(authRequired)
	{
		// リマインダーの基本CRUD操作
		reminders.POST("", reminderHandler.CreateReminder)       // POST /api/reminders
		reminders.GET("", reminderHandler.ListReminders)         // GET /api/reminders
		reminders.GET("/stats", reminderHandler.GetStats)        // GET /api/reminders/stats
		reminders.GET("/:id", reminderHandler.GetReminder)       // GET /api/reminders/:id
		reminders.PUT("/:id", reminderHandler.UpdateReminder)    // PUT /api/reminders/:id
		reminders.DELETE("/:id", reminderHandler.DeleteReminder) // DELETE /api/reminders/:id

		// リマインダーの特別な操作
		reminders.PATCH("/:id/done", reminderHandler.MarkAsDone)  // PATCH /api/reminders/:id/done
		reminders.POST("/bulk-delete", reminderHandler.BulkDelete) // POST /api/reminders/bulk-delete
	}

	// プロジェクト管理ルート
	projects := api.Group("/projects")
	projects.Use(authRequired)
	{
		projects.POST("", projectHandler.CreateProject)       // POST /api/projects
		projects.GET("", projectHandler.ListProjects)         // GET /api/projects
		projects.GET("/:id", projectHandler.GetProject)       // GET /api/projects/:id
		projects.PUT("/:id", projectHandler.UpdateProject)    // PUT /api/projects/:id
		projects.DELETE("/:id", projectHandler.DeleteProject) // DELETE /api/projects/:id
	}

	// パターン分析ルート
	patterns := api.Group("/patterns")
	patterns.Use(authRequired)
	{
		patterns.GET("", patternHandler.ListPatterns)             // GET /api/patterns
		patterns.POST("/refresh", patternHandler.RefreshPatterns) // POST /api/patterns/refresh
	}
}
