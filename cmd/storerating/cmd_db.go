package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/database/seeders"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/migration"
)

// withDB loads config, opens the database for the duration of fn and
// closes it afterwards.
func withDB(cmd *cobra.Command, fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	db, err := database.Connect(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck
	return fn(db)
}

// storerating migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB) error {
			fmt.Println("Running migrations…")
			ran, err := migration.New(cmd.Context(), db).Run()
			for _, name := range ran {
				fmt.Println("  ✅ Migrated:", name)
			}
			if err == nil && len(ran) == 0 {
				fmt.Println("  Nothing to migrate.")
			}
			return err
		})
	},
}

// storerating migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB) error {
			fmt.Println("Rolling back last batch…")
			rolled, err := migration.New(cmd.Context(), db).Rollback()
			for _, name := range rolled {
				fmt.Println("  ↩ Rolled back:", name)
			}
			if err == nil && len(rolled) == 0 {
				fmt.Println("  Nothing to roll back.")
			}
			return err
		})
	},
}

// storerating migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB) error {
			statuses, err := migration.New(cmd.Context(), db).Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
			for _, s := range statuses {
				ran, batch := "No", "-"
				if s.Ran {
					ran, batch = "Yes", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, ran, batch)
			}
			return w.Flush()
		})
	},
}

// storerating seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB) error {
			fmt.Println("Running seeders…")
			return seeders.RunAll(cmd.Context(), db, os.Stdout)
		})
	},
}
