package services

import (
	"time"

	"autodrive/internal/config"
	"autodrive/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the recurring jobs: per-minute practice reminder checks
// and the weekly team report generation.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
	reports      *ReportService
	cron         *cron.Cron
}

func NewScheduler(log *zap.Logger, emailService *EmailService, reports *ReportService) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
		reports:      reports,
		cron:         cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start registers the cron jobs and launches the scheduler.
func (s *Scheduler) Start() error {
	digest := config.Conf.Digest

	if _, err := s.cron.AddFunc(digest.ReminderSpec, s.runReminderCheck); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(digest.ReportSpec, s.runWeeklyReports); err != nil {
		return err
	}

	s.log.Info("Starting scheduler",
		zap.String("reminder_spec", digest.ReminderSpec),
		zap.String("report_spec", digest.ReportSpec),
	)
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runReminderCheck() {
	// Get current time in UTC, formatted as HH:MM
	currentTime := time.Now().UTC().Format("15:04")
	s.log.Debug("Running practice reminder check", zap.String("utc_time", currentTime))

	users, err := repository.GetUsersForPracticeReminder(currentTime)
	if err != nil {
		s.log.Error("Failed to get users for practice reminder", zap.Error(err))
		return
	}

	for _, user := range users {
		completed, err := repository.HasCompletedLessonToday(user.ID)
		if err != nil {
			s.log.Error("Failed to check lesson completion status", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}

		if !completed {
			go s.emailService.SendPracticeReminder(user)
		}
	}
}

func (s *Scheduler) runWeeklyReports() {
	teams, err := repository.GetTeams()
	if err != nil {
		s.log.Error("Failed to list teams for weekly reports", zap.Error(err))
		return
	}

	reportPaths := make(map[string]string, len(teams))
	for _, team := range teams {
		path, err := s.reports.GenerateTeamReport(team)
		if err != nil {
			s.log.Error("Failed to generate team report", zap.String("team", team), zap.Error(err))
			continue
		}
		reportPaths[team] = path
	}

	managers, err := repository.GetManagers()
	if err != nil {
		s.log.Error("Failed to list managers for weekly digest", zap.Error(err))
		return
	}
	for _, manager := range managers {
		path, ok := reportPaths[manager.Team]
		if !ok {
			continue
		}
		go s.emailService.SendTeamDigest(manager, manager.Team, path)
	}
}
