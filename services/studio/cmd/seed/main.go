package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"studio-portfolio/pkg/config"
	"studio-portfolio/pkg/database"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// seed creates the first admin account, or promotes and reactivates it when
// the email already exists.
func main() {
	var email, name, password string
	flag.StringVar(&email, "email", "", "admin email (default ADMIN_EMAIL)")
	flag.StringVar(&name, "name", "", "admin name (default ADMIN_NAME)")
	flag.StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if email == "" {
		email = cfg.AdminEmail
	}
	if name == "" {
		name = cfg.AdminName
	}
	if password == "" {
		password = cfg.AdminPassword
	}
	email = strings.ToLower(strings.TrimSpace(email))

	log := logger.New()
	defer log.Sync()

	if len(password) < 8 {
		log.Error("Admin password must be at least 8 characters (set ADMIN_PASSWORD or -password)")
		return
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	users := persistent.NewUserRepository(db)

	existing, err := users.GetByEmail(email)
	switch {
	case err == nil:
		existing.Role = entity.RoleAdmin
		existing.IsActive = true
		if err := users.Update(existing); err != nil {
			log.Error("Failed to promote %s: %v", email, err)
			panic(err)
		}
		log.Info("User %s already exists, ensured admin role", email)
		return
	case !errors.Is(err, persistent.ErrNotFound):
		log.Error("Failed to look up %s: %v", email, err)
		panic(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	admin := &entity.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(admin); err != nil {
		log.Error("Failed to create admin: %v", err)
		panic(err)
	}
	log.Info("Created admin %s (%s)", admin.Email, admin.ID)
}
