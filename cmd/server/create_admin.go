package main

import (
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/internal/domain"
	"hirehub/pkg/factory"
)

const (
	usernameFlag = "username"
	emailFlag    = "email"
	passwordFlag = "password"
)

var createAdminFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "admin",
		Usage: "Display name of the admin account",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Login email of the admin account (required)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Password of the admin account (required)",
	},
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long: `Create an admin account directly in the database.

Admins cannot be created through the public API, so the first one is
bootstrapped here. Pending migrations are applied first.`,
		RunE: createAdminCommand,
	}
	cobraflags.RegisterMap(cmd, createAdminFlags)
	return cmd
}

func createAdminCommand(cmd *cobra.Command, _ []string) error {
	username := createAdminFlags[usernameFlag].GetString()
	email := createAdminFlags[emailFlag].GetString()
	password := createAdminFlags[passwordFlag].GetString()
	if email == "" || password == "" {
		return errors.New("--email and --password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The admin bootstrap never needs the job cache.
	cfg.Redis.Enabled = false

	ctx := cmd.Context()

	appFactory, err := factory.NewFactory(ctx, cfg)
	if err != nil {
		return err
	}
	defer appFactory.Close()

	if err := database.NewMigrationService(appFactory.GetDB(), appFactory.GetDialect(), appFactory.GetLogger()).RunMigrations(ctx); err != nil {
		return err
	}

	result, err := appFactory.GetUserService().CreateUserWithRole(ctx, username, email, password, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("admin oluşturulamadı: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Admin created: id=%d email=%s\n", result.User.ID, result.User.Email)
	return nil
}
