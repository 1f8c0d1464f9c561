package app

import (
	"kstudent_backend/internal/config"
	"kstudent_backend/internal/middleware"
	"kstudent_backend/internal/model"
	"kstudent_backend/pkg/monitoring"

	"kstudent_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/login", c.auth.Login)
		api.GET("/announcements", c.executive.ListAnnouncements)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.auth.GetProfile)
	}

	student := auth.Group("/student")
	student.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		student.GET("/dashboard", c.student.Dashboard)
		student.GET("/grades", c.student.Grades)
		student.GET("/schedule", c.student.Schedule)
		student.GET("/requests", c.student.ListRequests)
		student.POST("/requests", c.student.CreateRequest)
	}

	teacher := auth.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.RoleTeacher))
	{
		teacher.GET("/dashboard", c.teacher.Dashboard)
		teacher.POST("/subjects", c.teacher.AddSubject)
		teacher.POST("/homeroom", c.teacher.SelectHomeroom)
		teacher.GET("/classes", c.teacher.Classes)
		teacher.POST("/grade", c.teacher.UpdateGrade)
		teacher.POST("/behavior", c.teacher.AdjustBehavior)
		teacher.GET("/students/:id/grades", c.teacher.StudentTranscript)
		teacher.GET("/students/:id/grade-logs", c.teacher.StudentGradeLogs)
		teacher.GET("/students/:id/behavior-logs", c.teacher.StudentBehaviorLogs)
		teacher.GET("/grades/export", c.teacher.ExportGrades)
		teacher.POST("/grades/import", c.teacher.ImportGrades)
		teacher.GET("/schedule", c.teacher.Schedule)
		teacher.GET("/requests", c.teacher.ListRequests)
		teacher.POST("/requests", c.teacher.CreateRequest)
	}

	staff := auth.Group("/staff")
	staff.Use(middleware.RoleMiddleware(model.RoleStaff))
	{
		staff.POST("/users", c.staff.CreateUser)
		staff.GET("/users", c.staff.ListUsers)
		staff.PUT("/users/:id/password", c.staff.ResetPassword)
		staff.DELETE("/users/:id", c.staff.DeleteUser)
		staff.POST("/classrooms", c.staff.CreateClassroom)
		staff.GET("/classrooms", c.staff.ListClassrooms)
		staff.POST("/schedules", c.staff.CreateSchedule)
		staff.DELETE("/schedules/:id", c.staff.DeleteSchedule)
		staff.POST("/enroll", c.staff.Enroll)
		staff.POST("/unenroll", c.staff.Unenroll)
		staff.GET("/requests", c.staff.ListRequests)
	}

	manager := auth.Group("/manager")
	manager.Use(middleware.RoleMiddleware(model.RoleManager))
	{
		manager.GET("/dashboard", c.manager.Dashboard)
		manager.GET("/requests", c.manager.RequestHistory)
	}

	executive := auth.Group("/executive")
	executive.Use(middleware.RoleMiddleware(model.RoleExecutive))
	{
		executive.GET("/stats", c.executive.Stats)
		executive.POST("/announcements", c.executive.CreateAnnouncement)
		executive.PUT("/announcements/:id", c.executive.UpdateAnnouncement)
		executive.DELETE("/announcements/:id", c.executive.DeleteAnnouncement)
		executive.POST("/requests/:id/resolve", c.executive.ResolveRequest)
	}
}
