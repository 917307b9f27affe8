// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"FrostCTF/config"
	"FrostCTF/controllers"
	"FrostCTF/middlewares"
	"FrostCTF/models"
	"FrostCTF/services"
)

// SetupRouter 注册全部路由分组
func SetupRouter(
	cfg config.Config,
	gate *services.AuthGate,
	challengeSvc *services.ChallengeService,
	leaderboardSvc *services.LeaderboardService,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	authController := controllers.NewAuthController(gate, cfg.CookieSecure)
	userController := controllers.NewUserController()
	eventController := controllers.NewEventController()
	categoryController := controllers.NewCategoryController()
	challengeController := controllers.NewChallengeController(challengeSvc)
	resourceController := controllers.NewResourceController()
	recordController := controllers.NewRecordController()
	teamController := controllers.NewTeamController()
	adminTeamController := controllers.NewAdminTeamController()
	leaderboardController := controllers.NewLeaderboardController(leaderboardSvc)

	authed := middlewares.SessionAuthMiddleware(gate)
	tryAuthed := middlewares.SessionTryAuthMiddleware(gate)
	adminOnly := middlewares.RoleAuthMiddleware(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		// 认证
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authController.Signup)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
			auth.GET("/me", authed, authController.Me)
		}

		// 赛事（公开）
		events := api.Group("/events")
		{
			events.GET("", eventController.ListEvents)
			events.GET("/:slug", eventController.GetEventDetail)
		}

		// 分类（公开）
		api.GET("/categories", categoryController.ListCategories)
		api.GET("/categories/:id", categoryController.GetCategoryDetail)

		// 题目：列表和详情匿名可看，提交与提示需登录
		challenges := api.Group("/challenges")
		{
			challenges.GET("", tryAuthed, challengeController.ListChallenges)
			challenges.GET("/:id", tryAuthed, challengeController.GetChallengeDetail)
			challenges.POST("/:id/submit", authed, challengeController.SubmitFlag)
			challenges.POST("/:id/hints/:index", authed, challengeController.OpenHint)
			challenges.GET("/:id/hints", authed, challengeController.ListRevealedHints)
		}

		// 附件下载
		api.GET("/resources/:resourceId/download", tryAuthed, resourceController.DownloadResource)

		// 排行榜与解题动态（公开）
		api.GET("/leaderboard", leaderboardController.GetLeaderboard)
		api.GET("/leaderboard/solves", leaderboardController.GetSolveFeed)

		// 当前用户的解题记录
		api.GET("/me/solves", authed, recordController.GetUserSolves)

		// 战队
		teams := api.Group("/teams", authed)
		{
			teams.POST("", teamController.CreateTeam)
			teams.POST("/join", teamController.JoinTeam)
			teams.GET("/mine", teamController.GetMyTeam)
			teams.PUT("/mine", teamController.UpdateTeam)
			teams.POST("/leave", teamController.LeaveTeam)
			teams.DELETE("/members/:userId", teamController.KickMember)
			teams.DELETE("/mine", teamController.DisbandTeam)
		}

		// 管理后台
		admin := api.Group("/admin", authed, adminOnly)
		{
			admin.GET("/users", userController.ListUsers)
			admin.PUT("/users/:id/role", userController.UpdateUserRole)
			admin.PUT("/users/:id/status", userController.UpdateUserStatus)
			admin.DELETE("/users/:id", userController.DeleteUser)

			admin.POST("/events", eventController.CreateEvent)
			admin.PUT("/events/:id", eventController.UpdateEvent)
			admin.DELETE("/events/:id", eventController.DeleteEvent)
			admin.POST("/events/:id/sponsors", eventController.AddEventSponsor)
			admin.DELETE("/events/sponsors/:sponsorId", eventController.DeleteEventSponsor)

			admin.POST("/categories", categoryController.CreateCategory)
			admin.PUT("/categories/:id", categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", categoryController.DeleteCategory)

			admin.POST("/challenges", challengeController.CreateChallenge)
			admin.GET("/challenges", challengeController.AdminListChallenges)
			admin.GET("/challenges/:id", challengeController.AdminGetChallengeDetail)
			admin.PUT("/challenges/:id", challengeController.UpdateChallenge)
			admin.DELETE("/challenges/:id", challengeController.DeleteChallenge)
			admin.POST("/challenges/:id/resources", resourceController.AddResource)
			admin.DELETE("/resources/:resourceId", resourceController.DeleteResource)

			admin.GET("/flag-logs", recordController.GetFlagLogs)
			admin.PUT("/flag-logs/:id/suspect", recordController.MarkSuspectSubmission)

			admin.GET("/teams", adminTeamController.AdminGetTeams)
			admin.PUT("/teams/:id/status", adminTeamController.AdminUpdateTeamStatus)
			admin.DELETE("/teams/:id", adminTeamController.AdminDeleteTeam)
		}
	}

	return r
}
