package repository

import (
	"autodrive/internal/database"
	"autodrive/internal/models"
)

// GetUsersForPracticeReminder finds users whose UTC reminder time matches
// the given HH:MM and who opted into email notifications.
func GetUsersForPracticeReminder(currentTimeUTC string) ([]models.User, error) {
	var users []models.User
	err := database.DB.
		Where("email_notifications = ? AND reminder_time = ?", true, currentTimeUTC).
		Find(&users).Error
	return users, err
}

// GetManagers returns every manager account, for weekly digest delivery.
func GetManagers() ([]models.User, error) {
	var managers []models.User
	err := database.DB.Where("role = ?", models.RoleManager).Find(&managers).Error
	return managers, err
}

// GetTeams lists the distinct team names with at least one rep.
func GetTeams() ([]string, error) {
	var teams []string
	err := database.DB.Model(&models.User{}).
		Where("team <> ''").
		Distinct().
		Pluck("team", &teams).Error
	return teams, err
}
