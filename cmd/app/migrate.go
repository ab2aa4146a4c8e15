package main

import (
	"discord_rps/internal/config"
	"discord_rps/internal/db"
	"discord_rps/internal/logger"
	"discord_rps/internal/migrations"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "List or apply the match history migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !apply {
				names, err := migrations.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					cmd.Println(name)
				}
				return nil
			}

			cfg, err := config.LoadDatabase()
			if err != nil {
				return oops.In("main").Wrapf(err, "load config")
			}
			logger.Init(cfg.LogLevel, cfg.LogJSON)

			pool, err := db.Connect(cmd.Context(), cfg.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := migrations.Apply(cmd.Context(), pool)
			for _, name := range applied {
				cmd.Printf("applied %s\n", name)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "apply migrations instead of listing them")

	return cmd
}
