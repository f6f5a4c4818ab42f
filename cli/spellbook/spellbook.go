package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/internal/cli"
)

var (
	configPath string
	verbose    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spellbook",
		Short: "Build and release Cortex Platform content packs",
		Long: `spellbook manages the lifecycle of Cortex Platform content packs:
- scaffold instances and packs
- validate and package packs into zip artifacts
- bump versions and create release tags`,
		Version:      cli.Version,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./spellbook.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose

	// Add subcommands
	cmd.AddCommand(
		cli.NewVersionCmd(),
		cli.NewBumpVersionCmd(),
		cli.NewSetVersionCmd(),
		cli.NewBuildCmd(),
		cli.NewListCmd(),
		cli.NewCreateCmd(),
		cli.NewInitCmd(),
		cli.NewInstancesCmd(),
	)

	return cmd
}
