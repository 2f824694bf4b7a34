// Command seed inserts development data. It is safe to run repeatedly: base
// seeding is skipped when the seed users already exist, and per-user task
// seeding only tops up to the requested count.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tasktrack-dev/tasktrack/db"
	"github.com/tasktrack-dev/tasktrack/internal/config"
	"github.com/tasktrack-dev/tasktrack/internal/models"
)

const seedPassword = "Password1!"

func main() {
	base := pflag.Bool("base", false, "seed the base users (one admin, two users) with three tasks each")
	userEmail := pflag.String("user-email", "", "email of the user to seed tasks for")
	taskCount := pflag.Int("tasks", 0, "ensure this total number of tasks for the user")
	pflag.Parse()

	if !*base && *userEmail == "" {
		pflag.Usage()
		return
	}
	if *userEmail != "" && *taskCount <= 0 {
		log.Fatal("--tasks is required when --user-email is provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if *base {
		if err := seedBase(gdb); err != nil {
			log.Fatalf("Base seeding failed: %v", err)
		}
	}
	if *userEmail != "" {
		if err := seedTasksForUser(gdb, *userEmail, *taskCount); err != nil {
			log.Fatalf("Task seeding failed: %v", err)
		}
	}
}

func seedBase(gdb *gorm.DB) error {
	var existing models.User
	if err := gdb.Where("email = ?", "alice@example.com").First(&existing).Error; err == nil {
		log.Println("Seed users already exist; skipping base seeding")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "alice@example.com", PasswordHash: string(hash), Role: models.RoleAdmin},
		{Email: "bob@example.com", PasswordHash: string(hash), Role: models.RoleUser},
		{Email: "carol@example.com", PasswordHash: string(hash), Role: models.RoleUser},
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
			for n := 1; n <= 3; n++ {
				due := datatypes.Date(time.Now().AddDate(0, 0, n))
				status := models.StatusPending
				if n == 3 {
					status = models.StatusInProgress
				}
				task := models.Task{
					OwnerID:     users[i].ID,
					Title:       fmt.Sprintf("Task %d for %s", n, users[i].Email),
					Description: fmt.Sprintf("Seeded task %d", n),
					DueDate:     &due,
					Status:      status,
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Base seed data inserted")
		return nil
	})
}

func seedTasksForUser(gdb *gorm.DB, email string, total int) error {
	var user models.User
	if err := gdb.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user %s not found, register them first: %w", email, err)
	}

	var existing int64
	if err := gdb.Model(&models.Task{}).Where("owner_id = ?", user.ID).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) >= total {
		log.Printf("User %s already has %d tasks (>= requested %d); nothing to do", email, existing, total)
		return nil
	}

	log.Printf("Creating %d tasks for %s", total-int(existing), email)
	for n := int(existing) + 1; n <= total; n++ {
		due := datatypes.Date(time.Now().AddDate(0, 0, n))
		status := models.StatusPending
		if n%3 == 0 {
			status = models.StatusInProgress
		}
		task := models.Task{
			OwnerID:     user.ID,
			Title:       fmt.Sprintf("Task %d", n),
			Description: fmt.Sprintf("Seeded task %d for %s", n, email),
			DueDate:     &due,
			Status:      status,
		}
		if err := gdb.Create(&task).Error; err != nil {
			return err
		}
	}
	return nil
}
