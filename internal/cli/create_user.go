// Package cli implements the maintenance subcommands of the openshelf
// binary.
package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/database/roles"
)

type CreateUserCommand struct {
	Email        string
	Password     string
	FullName     string
	Phone        string
	Admin        bool
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address of the new user (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new user (required)")
	fs.StringVar(&cmd.FullName, "name", "", "Full name of the new user (required)")
	fs.StringVar(&cmd.Phone, "phone", "", "Phone number (optional)")
	fs.BoolVar(&cmd.Admin, "admin", false, "Grant the admin role to the new user")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account, optionally with the admin role.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -email reader@example.com -name \"Jane Reader\" -password <password>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -email admin@example.com -name Admin -password <password> -admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" || cmd.Password == "" || cmd.FullName == "" {
		fs.Usage()
		return fmt.Errorf("email, name and password are required")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	cfg := config.NewConfig()
	authService := auth.NewService(db.DB, cfg.Auth)

	user, err := authService.Signup(cmd.Email, cmd.Password, cmd.FullName, cmd.Phone)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if cmd.Admin {
		roleRepo := roles.NewRepository(db.DB)
		if err := roleRepo.SetRole(user.ID, string(access.RoleAdmin)); err != nil {
			return fmt.Errorf("user created but failed to grant admin role: %w", err)
		}
	}

	role := access.RoleUser
	if cmd.Admin {
		role = access.RoleAdmin
	}
	fmt.Printf("Created user %s (id %d) with role %s\n", user.Email, user.ID, role)

	return nil
}
