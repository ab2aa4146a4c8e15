package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discord-rps",
		Short: "Rock paper scissors for Discord",
		Long:  "Discord interactions webhook that runs rock paper scissors challenges between server members.",
		// serve is the default
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(
		serveCmd(),
		registerCmd(),
		migrateCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Error(ctx, "command failed", "error", err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
