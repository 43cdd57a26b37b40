package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gatepass/internal/config"
	"gatepass/internal/db"
	"gatepass/internal/model"
)

type seedUser struct {
	Username string
	Password string
	Role     model.Role
	Name     string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Pass{}, &model.Notification{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Students register through the API; the warden and guard accounts are
	// provisioned here. Override the default passwords via environment.
	users := []seedUser{
		{
			Username: "warden",
			Password: getEnv("SEED_WARDEN_PASSWORD", "warden123"),
			Role:     model.RoleWarden,
			Name:     "Dr. Smith (Warden)",
		},
		{
			Username: "guard",
			Password: getEnv("SEED_GUARD_PASSWORD", "guard123"),
			Role:     model.RoleGuard,
			Name:     "Security Officer",
		},
	}

	created := 0
	for _, u := range users {
		var count int64
		if err := gormDB.Model(&model.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to check user %s: %v", u.Username, err)
		}
		if count > 0 {
			log.Printf("User %s already exists, skipping", u.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.Username, err)
		}

		user := model.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
			Name:         u.Name,
		}
		if err := gormDB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Username, err)
		}

		log.Printf("Created user %s (role=%s)", u.Username, u.Role)
		created++
	}

	logSummary(gormDB, created)
}

func logSummary(gormDB *gorm.DB, created int) {
	var total int64
	_ = gormDB.Model(&model.User{}).Count(&total).Error
	log.Printf("Seed complete: %d created, %d total users", created, total)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
