package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"vendshop/internal/model"
	"vendshop/pkg/database"

	"github.com/joho/godotenv"
)

// Promotes an existing account to admin. Useful when the store was first
// deployed without ADMIN_EMAIL set.
func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()

	if *email == "" {
		log.Fatal("Usage: grant-admin -email user@example.com")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()

	normalized := strings.ToLower(strings.TrimSpace(*email))
	res := db.Model(&model.User{}).Where("email = ?", normalized).Update("is_admin", true)
	if res.Error != nil {
		log.Fatal("Failed to update user: ", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Fatalf("No account found with email %s", normalized)
	}

	fmt.Printf("%s is now an admin\n", normalized)
}
