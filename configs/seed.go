package configs

import (
	"fmt"
	"log"

	"tableside/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedStaff creates the admin account on first run.
func SeedStaff(cfg *Config) error {
	db := DB()
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding staff: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Staff{}).Where("username = ?", cfg.AdminUsername).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff := entity.Staff{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
	}
	return db.Create(&staff).Error
}

// SeedTables ensures tables 1..TableCount exist, each with a stable code
// the printed table markers encode.
func SeedTables(cfg *Config) error {
	db := DB()
	for i := 1; i <= cfg.TableCount; i++ {
		code := fmt.Sprintf("table-%03d", i)
		if err := db.FirstOrCreate(&entity.Table{}, entity.Table{Code: code}).Error; err != nil {
			return err
		}
	}
	return nil
}
