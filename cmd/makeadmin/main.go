package main

import (
	"flag"
	"log"

	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

// Promotes an existing account to admin. Run once after the first register
// to bootstrap the moderation surface.
func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	if *email == "" {
		log.Fatal("usage: makeadmin -email user@example.com")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	user, err := models.GetUserByEmail(*email)
	if err != nil {
		log.Fatalf("No account with email %s: %v", *email, err)
	}

	if user.IsAdmin {
		log.Printf("%s is already an admin", user.Email)
		return
	}

	if err := models.UpdateUserFlags(user, map[string]interface{}{"is_admin": true}); err != nil {
		log.Fatalf("Failed to promote %s: %v", user.Email, err)
	}

	log.Printf("%s is now an admin", user.Email)
}
