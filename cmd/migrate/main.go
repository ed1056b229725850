package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/database"
)

// Runs the schema migrations and exits. The server runs them on boot as
// well; this tool exists for provisioning a database ahead of a deploy.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}
	log.Println("Migrations completed successfully")
}
