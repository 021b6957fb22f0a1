package main

import (
	"bytes"
	"fmt"
	"os"
	"syscall"

	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/service"
	"golang.org/x/term"
)

// hash-password prints a bcrypt hash for STAFF_PASSWORD_HASH.
func main() {
	cfg := config.Load()
	auth := service.NewAuthService(cfg)

	fmt.Println("=== Staff Password Hash ===")
	fmt.Printf("Account: %s\n", cfg.StaffUsername)

	fmt.Print("Enter Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "Error: Password must be at least 8 characters")
		os.Exit(1)
	}

	fmt.Print("Confirm Password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil || !bytes.Equal(password, confirm) {
		fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nAdd this to your .env:\nSTAFF_USERNAME=%s\nSTAFF_PASSWORD_HASH='%s'\n", cfg.StaffUsername, hash)
}
