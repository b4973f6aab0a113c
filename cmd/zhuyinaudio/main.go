package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/zhuyinaudio/internal/cli"
	"codeberg.org/snonux/zhuyinaudio/internal/processor"
	"codeberg.org/snonux/zhuyinaudio/internal/report"
)

// Exit code of a run stopped by SIGINT, as shells report it
const exitInterrupted = 130

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.SetupLogging(flags.Debug, nil)
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		report.Error.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	return processor.NewProcessor(flags).Run(ctx)
}
