package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk-api/internal/config"
	"github.com/taskdesk/taskdesk-api/internal/database"
	"github.com/taskdesk/taskdesk-api/internal/routes"
)

var rootCmd = &cobra.Command{
	Use:   "taskdesk",
	Short: "Task management API server",
	Long: `taskdesk serves the task management API: accounts, role-scoped tasks
with checklists, dashboards and spreadsheet exports.`,
	// Running without a subcommand starts the server.
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := connectAndMigrate(cfg); err != nil {
			return err
		}
		log.Println("Migrations applied")
		return nil
	},
}

var skipMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "start without running migrations")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if skipMigrate {
		if err := database.Connect(cfg); err != nil {
			return err
		}
	} else if err := connectAndMigrate(cfg); err != nil {
		return err
	}

	store, err := routes.NewSessionStore(cfg)
	if err != nil {
		return err
	}

	r := routes.NewRouter(cfg, database.GetDB(), store)

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	return r.Run(":" + cfg.Port)
}

func connectAndMigrate(cfg *config.Config) error {
	if err := database.Connect(cfg); err != nil {
		return err
	}
	return database.Migrate()
}
