// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showcase/internal/backend"
	"showcase/internal/database"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample content into empty tables",
	Long: `Seed inserts the bundled sample content, or the YAML file given with
--file, into every content table that has no rows yet.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixtures to load instead of the bundled set")
}

func runSeed(cmd *cobra.Command, args []string) error {
	sd, err := loadSeed(seedFile)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	n, err := database.Seed(cmd.Context(), backend.NewPostgres(db), sd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rows\n", n)
	return nil
}

func loadSeed(path string) (database.SeedData, error) {
	if path == "" {
		return database.DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return database.ParseSeed(data)
}
