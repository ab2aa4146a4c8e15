package main

import (
	"discord_rps/internal/config"
	"discord_rps/internal/discord"
	"discord_rps/internal/interactions"
	"discord_rps/internal/logger"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register-commands",
		Short: "Install missing application commands",
		Long:  "Installs every command this service answers that is not registered yet. Commands are matched by name; changed definitions are not updated.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return oops.In("main").Wrapf(err, "load config")
			}
			logger.Init(cfg.LogLevel, cfg.LogJSON)

			client, err := discord.New(cfg.BotToken, cfg.AppID)
			if err != nil {
				return err
			}

			created, err := client.EnsureCommands(cmd.Context(), cfg.GuildID, interactions.Commands())
			for _, name := range created {
				cmd.Printf("installed %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(created) == 0 {
				cmd.Println("all commands already installed")
			}
			return nil
		},
	}
}
