package services

import (
	"fmt"

	"autodrive/internal/models"

	"go.uber.org/zap"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendPracticeReminder simulates sending a daily practice reminder.
func (s *EmailService) SendPracticeReminder(user models.User) {
	s.log.Info("Sending practice reminder email",
		zap.String("to", user.Email),
		zap.String("name", user.FirstName),
	)
	// In a real application, you would use an SMTP client like go-mail
	// to send a templated HTML email here.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Time for today's roleplay practice\nHi %s,\nYou haven't completed a lesson today. A quick session keeps your CX stats moving.\n\n", user.Email, user.FirstName)
}

// SendTeamDigest simulates sending the weekly team report to a manager.
func (s *EmailService) SendTeamDigest(manager models.User, team, reportPath string) {
	s.log.Info("Sending weekly team digest",
		zap.String("to", manager.Email),
		zap.String("team", team),
		zap.String("report", reportPath),
	)
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Weekly AutoDrive report for team %s\nHi %s,\nYour team's weekly performance report is ready: %s\n\n", manager.Email, team, manager.FirstName, reportPath)
}
