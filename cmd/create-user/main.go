package main

import (
	"bufio"
	"flag"
	"fmt"
	"hostel_complaints_go/config"
	"hostel_complaints_go/db"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	role := flag.String("role", models.RoleStudent, "user role (student or admin)")
	hostelName := flag.String("hostel", "", "hostel name, created if missing (students only)")
	roomNo := flag.String("room", "", "room number")
	deactivate := flag.String("deactivate", "", "username or email of an account to deactivate instead of creating one")
	flag.Parse()

	if *role != models.RoleStudent && *role != models.RoleAdmin {
		log.Fatalf("Unknown role %q", *role)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Hostel{}, &models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *deactivate != "" {
		user, err := services.DeactivateUser(db.DB, *deactivate)
		if err != nil {
			log.Fatalf("Failed to deactivate user: %v", err)
		}
		fmt.Printf("✓ User %s deactivated and signed out everywhere\n", user.Username)
		return
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	if username == "" || name == "" || email == "" || password == "" {
		log.Fatal("Username, name, email, and password are required")
	}

	if err := services.ValidatePassword(password); err != nil {
		log.Fatal(err)
	}

	var existing int64
	db.DB.Model(&models.User{}).Where("email = ? OR username = ?", email, username).Count(&existing)
	if existing > 0 {
		log.Fatalf("User with email %s or username %s already exists", email, username)
	}

	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		RoomNo:   *roomNo,
		Role:     *role,
		IsActive: true,
	}

	// Admins are not tied to a hostel
	if *role == models.RoleStudent && *hostelName != "" {
		hostel, err := services.EnsureHostel(db.DB, *hostelName)
		if err != nil {
			log.Fatalf("Failed to resolve hostel: %v", err)
		}
		user.HostelID = &hostel.ID
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Role: %s\n", user.Role)
	if *hostelName != "" && user.HostelID != nil {
		fmt.Printf("  Hostel: %s\n", *hostelName)
	}
	fmt.Println()
}
