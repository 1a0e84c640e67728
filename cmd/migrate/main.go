package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	appconfig "github.com/kengni1234/kengni-finance-v2/internal/config"
	pkgconfig "github.com/kengni1234/kengni-finance-v2/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	migrationsPath string
)

func databaseURL(db pkgconfig.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.DBName, db.SSLMode)
}

func openMigrator() *migrate.Migrate {
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL(cfg.Database))
	if err != nil {
		log.Fatalf("Failed to open migrator: %v", err)
	}
	return m
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source close error: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database close error: %v", dbErr)
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring the finance schema up to the latest version",
	Run: func(cmd *cobra.Command, args []string) {
		m := openMigrator()
		defer closeMigrator(m)

		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("Schema already up to date.")
				return
			}
			log.Fatalf("Migration up failed: %v", err)
		}
		fmt.Println("Schema migrated to the latest version.")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent schema migration",
	Run: func(cmd *cobra.Command, args []string) {
		m := openMigrator()
		defer closeMigrator(m)

		if err := m.Steps(-1); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("Nothing to roll back.")
				return
			}
			log.Fatalf("Migration down failed: %v", err)
		}
		fmt.Println("Rolled back one migration.")
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the finance database schema",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&migrationsPath, "migrations", "m", "migrations", "Path to the migration files")

	rootCmd.AddCommand(upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
