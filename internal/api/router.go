package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/config"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/database"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/handler"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/middleware"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/repository"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/service"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/team"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, teamStore *team.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Magnetic Survey API is running",
		})
	})

	db := database.GetDB()

	// Repositories
	projectRepo := repository.NewProjectRepository(db)
	readingRepo := repository.NewReadingRepository(db)
	gridFileRepo := repository.NewGridFileRepository(db)

	// Services
	projectService := service.NewProjectService(projectRepo, readingRepo)
	surveyService := service.NewSurveyService(projectRepo, readingRepo, gridFileRepo, cfg.Survey)
	exportService := service.NewExportService(projectRepo, readingRepo, surveyService)
	statsService := service.NewStatsService(projectRepo, readingRepo)

	// Handlers
	projectHandler := handler.NewProjectHandler(projectService)
	readingHandler := handler.NewReadingHandler(readingRepo, surveyService)
	gridHandler := handler.NewGridHandler(surveyService)
	surveyHandler := handler.NewSurveyHandler(surveyService)
	exportHandler := handler.NewExportHandler(exportService)
	statsHandler := handler.NewStatsHandler(statsService)
	teamHandler := handler.NewTeamHandler(teamStore)

	auth := middleware.Auth(cfg.JWTSecret)

	// API 路由组
	api := r.Group("/api/v1")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProjectByID)
			projects.POST("", auth, projectHandler.CreateProject)
			projects.DELETE("/:id", auth, projectHandler.DeleteProject)
		}

		readings := api.Group("/readings")
		{
			readings.GET("", readingHandler.GetReadings)
			readings.DELETE("/:id", auth, readingHandler.DeleteReading)
		}

		grids := api.Group("/grids")
		{
			grids.GET("", gridHandler.GetGrids)
			grids.POST("", auth, gridHandler.BuildGrid)
			grids.DELETE("/:name", auth, gridHandler.DeleteGrid)
		}

		surveyGroup := api.Group("/survey")
		{
			surveyGroup.GET("/coverage", surveyHandler.GetCoverage)
			surveyGroup.GET("/grid", surveyHandler.GetGrid)
			surveyGroup.GET("/next-target", surveyHandler.GetNextTarget)
			surveyGroup.GET("/readings", surveyHandler.GetSessionReadings)

			surveyGroup.POST("/session", auth, surveyHandler.StartSession)
			surveyGroup.DELETE("/session", auth, surveyHandler.EndSession)
			surveyGroup.POST("/sensors", auth, surveyHandler.UpdateSensors)
			surveyGroup.PUT("/calibration", auth, surveyHandler.SetCalibration)
			surveyGroup.POST("/readings", auth, surveyHandler.Record)
			surveyGroup.POST("/auto-collect", auth, surveyHandler.StartAutoCollect)
			surveyGroup.DELETE("/auto-collect", auth, surveyHandler.StopAutoCollect)
		}

		exportGroup := api.Group("/export")
		{
			exportGroup.GET("/formats", exportHandler.GetFormats)
			exportGroup.GET("/:projectId", exportHandler.ExportProject)
		}

		statsGroup := api.Group("/stats")
		{
			statsGroup.GET("/:projectId/field", statsHandler.GetFieldSummary)
		}

		teamGroup := api.Group("/team")
		{
			teamGroup.GET("/members", teamHandler.GetMembers)
			teamGroup.GET("/nearby", teamHandler.GetNearby)
			teamGroup.POST("/position", auth, teamHandler.UpdatePosition)
			teamGroup.DELETE("/members/:deviceId", auth, teamHandler.RemoveMember)
		}
	}

	return r
}
