package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shandysiswandi/astra/internal/app"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// @title           Astra API
// @version         1.0
// @description     Astra issues, verifies and cleans up one-time passwords for account activation.
// @contact.name    Contact Support
// @contact.email   support@astra.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:          "astra",
		Short:        "Astra OTP lifecycle service",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newCleanupCommand(), newMigrateCommand())

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server, message consumers and the cleanup job",
		RunE: func(*cobra.Command, []string) error {
			application := app.New()    // Initialize the application
			wait := application.Start() // Start the application and wait for the termination signal
			<-wait                      // Wait for the application to receive a termination signal
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			application.Stop(ctx) // Stop the application gracefully
			return nil
		},
	}
}

type cleanupOutput struct {
	DryRun               bool  `json:"dry_run"`
	ExpiredOTPsDeleted   int64 `json:"expired_otps_deleted"`
	InactiveUsersDeleted int64 `json:"inactive_users_deleted"`
	TotalCleanupCount    int64 `json:"total_cleanup_count"`
}

func newCleanupCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired OTPs and never-activated accounts once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := app.NewTask()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				application.Stop(ctx)
			}()

			res, err := application.Cleanup(cmd.Context(), dryRun)
			if err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cleanupOutput{
				DryRun:               res.DryRun,
				ExpiredOTPsDeleted:   res.RecordsDeleted,
				InactiveUsersDeleted: res.AccountsDeleted,
				TotalCleanupCount:    res.Total(),
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count what would be deleted without deleting")

	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := app.NewMigrator()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				application.Stop(ctx)
			}()

			applied, err := application.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(applied))
			return err
		},
	}
}
