package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kstudent_backend/internal/config"
	"kstudent_backend/internal/controller"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/service"
	"kstudent_backend/pkg/database"
	"kstudent_backend/pkg/logger"
	"kstudent_backend/pkg/monitoring"
	"kstudent_backend/pkg/security"
	"kstudent_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	classroom    *repository.ClassroomRepository
	student      *repository.StudentRepository
	subject      *repository.SubjectRepository
	grade        *repository.GradeRepository
	request      *repository.RequestRepository
	schedule     *repository.ScheduleRepository
	announcement *repository.AnnouncementRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	student      *service.StudentService
	subject      *service.SubjectService
	classroom    *service.ClassroomService
	grade        *service.GradeService
	gradeCSV     *service.GradeCSVService
	schedule     *service.ScheduleService
	request      *service.RequestService
	announcement *service.AnnouncementService
	dashboard    *service.DashboardService
}

type controllers struct {
	auth      *controller.AuthController
	student   *controller.StudentController
	teacher   *controller.TeacherController
	staff     *controller.StaffController
	manager   *controller.ManagerController
	executive *controller.ExecutiveController
	health    *controller.HealthController
}

// RegisterConfigCallback adds a hook run whenever the config file is
// reloaded at runtime.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a freshly loaded config out to the registered
// callbacks.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		classroom:    repository.NewClassroomRepository(db),
		student:      repository.NewStudentRepository(db),
		subject:      repository.NewSubjectRepository(db),
		grade:        repository.NewGradeRepository(db),
		request:      repository.NewRequestRepository(db),
		schedule:     repository.NewScheduleRepository(db),
		announcement: repository.NewAnnouncementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.student, repos.classroom)
	s.student = service.NewStudentService(repos.student)
	s.subject = service.NewSubjectService(repos.subject)
	s.classroom = service.NewClassroomService(repos.classroom)
	s.grade = service.NewGradeService(repos.grade, repos.student, repos.subject)
	s.gradeCSV = service.NewGradeCSVService(repos.grade, repos.subject)
	s.schedule = service.NewScheduleService(repos.schedule, repos.classroom, repos.subject)
	s.request = service.NewRequestService(repos.request)
	s.announcement = service.NewAnnouncementService(repos.announcement)
	s.dashboard = service.NewDashboardService(repos.user, repos.student, repos.classroom, repos.grade, repos.request, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		student:   controller.NewStudentController(s.grade, s.schedule, s.request, s.student),
		teacher:   controller.NewTeacherController(s.subject, s.student, s.grade, s.gradeCSV, s.schedule, s.user, s.request, a.Config),
		staff:     controller.NewStaffController(s.user, s.classroom, s.schedule, s.grade, s.request),
		manager:   controller.NewManagerController(s.dashboard, s.request),
		executive: controller.NewExecutiveController(s.dashboard, s.announcement, s.request),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode == "debug" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, stats caching disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Redis)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("kstudent-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	// Runtime config reload only rolls the academic period forward;
	// everything else needs a restart.
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		cfg.School = newCfg.School
		logger.Log.Info("School period updated",
			zap.Int("academicYear", newCfg.School.AcademicYear),
			zap.Int("semester", newCfg.School.Semester))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
