package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// Creates a login user from the command line. There is no signup endpoint,
// so the first account is provisioned with this tool.
func main() {
	email := flag.String("email", "", "user email (required)")
	password := flag.String("password", "", "user password (required)")
	firstName := flag.String("first-name", "Admin", "user first name")
	lastName := flag.String("last-name", "User", "user last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: add_user -email <email> -password <password> [-first-name <name>] [-last-name <name>]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if err := database.CreateUser(db, user); err != nil {
		if err == database.ErrConflict {
			log.Fatalf("User with email %s already exists", *email)
		}
		log.Fatal("Error creating user: ", err)
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
