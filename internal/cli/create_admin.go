package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/services"
)

// AdminPasswordEnv is read when -password is not given, so the secret does
// not end up in shell history.
const AdminPasswordEnv = "BOOKSHELF_ADMIN_PASSWORD"

// CreateAdminCommand creates an administrator account. Admins cannot be
// registered through the API.
type CreateAdminCommand struct {
	Email        string
	Name         string
	Password     string
	DatabasePath string

	Out io.Writer
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{Out: os.Stdout}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)

	fs.StringVar(&cmd.Email, "email", "", "Admin email address (required)")
	fs.StringVar(&cmd.Name, "name", "Administrator", "Display name")
	fs.StringVar(&cmd.Password, "password", "", "Password (default: $"+AdminPasswordEnv+")")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to a sqlite database (default: DATABASE_* settings)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -email <address> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s=secret123 %s create-admin -email admin@example.com\n", AdminPasswordEnv, os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		cmd.Password = os.Getenv(AdminPasswordEnv)
	}
	if cmd.Password == "" {
		return fmt.Errorf("password required: pass -password or set %s", AdminPasswordEnv)
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	auditService := newAuditService(db)
	defer auditService.Wait()

	userService := services.NewUserService(users.NewRepository(db.DB), config.NewConfig().BcryptCost, auditService)
	user, err := userService.CreateAdmin(context.Background(), cmd.Email, cmd.Password, cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Created admin %s (id %d)\n", user.Email, user.ID)
	return nil
}
