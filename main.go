package main

import (
	"flag"
	"log"

	"kstudent_backend/internal/app"
	"kstudent_backend/internal/config"
	"kstudent_backend/pkg/configwatcher"
	"kstudent_backend/pkg/logger"
)

// @title KStudent API
// @version 1.0
// @description Role-based school administration backend: grades, GPA transcripts, schedules, behavior scores and announcements.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	forceMigrate := flag.Bool("migrate", false, "run database migrations before starting")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *forceMigrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer func() {
		if logger.Log != nil {
			logger.Log.Sync()
		}
	}()

	if cfg.MigrateOnly {
		log.Println("Migration complete")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
