package main

import (
	"autodrive/internal/config"
	"autodrive/internal/database"
	logger "autodrive/internal/logging"
	"autodrive/internal/models"
	"autodrive/internal/router"
	"autodrive/internal/services"
	"autodrive/internal/utils"

	"go.uber.org/zap"
)

func main() {
	// Bootstrap logger with defaults; config isn't loaded yet.
	bootLog, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	// Initialize Configuration
	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Rebuild the logger with the operator's logging settings, so the
	// directory and rotation knobs in config actually take effect.
	logCfg := config.Conf.Logging
	log, err := logger.InitWithRotation(logCfg.Directory, logger.Rotation{
		MaxSize:    logCfg.MaxSize,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAge,
		Compress:   logCfg.Compress,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize logger from config", zap.Error(err))
	}
	bootLog.Sync()
	defer log.Sync()

	// A missing session secret would silently break cookie auth across
	// restarts; generate an ephemeral one and warn loudly.
	if config.Conf.Server.SessionSecret == "" {
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		config.Conf.Server.SessionSecret = secret
		log.Warn("No session secret configured; generated an ephemeral one. Sessions will not survive restarts.")
	}

	// Initialize Database
	database.Init(log)

	// Load the roleplay lesson catalog at startup
	catalog, err := models.LoadCatalog(config.Conf.Lessons.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load lesson catalog", zap.Error(err))
	}
	log.Info("Lesson catalog loaded", zap.Int("lessons", len(catalog.Lessons)))

	// Start the recurring jobs (practice reminders, weekly team reports)
	emailService := services.NewEmailService(log)
	reportService := services.NewReportService(log)
	scheduler := services.NewScheduler(log, emailService, reportService)
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Setup router, passing the logger to it
	r := router.Setup(log, catalog)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
