package database

import (
	"fmt"
	"log"
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password"

// SeedDemoData fills an empty store with the demo team, their tasks and the
// time logged against them. It does nothing when users already exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		john := &models.User{Name: "John Developer", Email: "dev@example.com", PasswordHash: string(hash), Role: models.RoleDeveloper}
		jane := &models.User{Name: "Jane Manager", Email: "manager@example.com", PasswordHash: string(hash), Role: models.RoleManager}
		bob := &models.User{Name: "Bob Developer", Email: "bob@example.com", PasswordHash: string(hash), Role: models.RoleDeveloper}
		for _, u := range []*models.User{john, jane, bob} {
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}

		tasks := []*models.Task{
			{
				Title:         "Fix login authentication bug",
				Description:   "Users are unable to login with correct credentials",
				Priority:      models.PriorityHigh,
				Status:        models.TaskStatusInProgress,
				AssigneeID:    john.ID,
				AssigneeName:  john.Name,
				ReporterID:    jane.ID,
				ReporterName:  jane.Name,
				CreatedAt:     day(2024, 1, 15),
				UpdatedAt:     day(2024, 1, 16),
				DueDate:       ptrTime(day(2024, 1, 20)),
				Tags:          []string{"bug", "authentication"},
				TimeSpent:     120,
				EstimatedTime: ptrInt(240),
			},
			{
				Title:         "Implement dark mode",
				Description:   "Add dark mode support to the application",
				Priority:      models.PriorityMedium,
				Status:        models.TaskStatusOpen,
				AssigneeID:    bob.ID,
				AssigneeName:  bob.Name,
				ReporterID:    jane.ID,
				ReporterName:  jane.Name,
				CreatedAt:     day(2024, 1, 14),
				UpdatedAt:     day(2024, 1, 14),
				DueDate:       ptrTime(day(2024, 1, 25)),
				Tags:          []string{"feature", "ui"},
				TimeSpent:     45,
				EstimatedTime: ptrInt(480),
			},
			{
				Title:         "Database performance optimization",
				Description:   "Optimize slow database queries",
				Priority:      models.PriorityCritical,
				Status:        models.TaskStatusPendingApproval,
				AssigneeID:    john.ID,
				AssigneeName:  john.Name,
				ReporterID:    jane.ID,
				ReporterName:  jane.Name,
				CreatedAt:     day(2024, 1, 10),
				UpdatedAt:     day(2024, 1, 17),
				Tags:          []string{"performance", "database"},
				TimeSpent:     360,
				EstimatedTime: ptrInt(600),
			},
		}
		for _, t := range tasks {
			if err := tx.Create(t).Error; err != nil {
				return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
			}
		}

		entries := []*models.TimeEntry{
			{TaskID: tasks[0].ID, UserID: john.ID, UserName: john.Name, Duration: 120, Description: "Investigated authentication flow", Date: day(2024, 1, 16)},
			{TaskID: tasks[1].ID, UserID: bob.ID, UserName: bob.Name, Duration: 45, Description: "Research dark mode implementation", Date: day(2024, 1, 14)},
			{TaskID: tasks[2].ID, UserID: john.ID, UserName: john.Name, Duration: 360, Description: "Database query optimization", Date: day(2024, 1, 17)},
		}
		for _, e := range entries {
			if err := tx.Create(e).Error; err != nil {
				return fmt.Errorf("failed to seed time entry: %w", err)
			}
		}

		log.Printf("Seeded demo data: %d users, %d tasks, %d time entries", 3, len(tasks), len(entries))
		return nil
	})
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func ptrInt(v int) *int {
	return &v
}
