package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/instance"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var (
		author       string
		description  string
		noSamplePack bool
	)

	cmd := &cobra.Command{
		Use:   "init <instance>",
		Short: "Initialise a new content instance",
		Long: `Initialise a new content instance.

Creates a directory with a Packs tree, a spellbook.yaml and a starter pack,
ready to become its own git repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInit(args[0], instance.Options{
				Author:       author,
				Description:  description,
				NoSamplePack: noSamplePack,
			})
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Default author for packs in this instance")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the instance")
	cmd.Flags().BoolVar(&noSamplePack, "no-sample-pack", false, "Skip creating the starter pack")

	return cmd
}

func runInit(name string, opts instance.Options) error {
	logger.InitLogger("info")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	path, err := instance.NewManager(cwd).Create(name, opts)
	if err != nil {
		return err
	}

	fmt.Printf("[OK] Created instance: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Printf("  1. cd %s\n", name)
	fmt.Println("  2. git init")
	fmt.Println("  3. git branch -M main")
	fmt.Println("  4. git add .")
	fmt.Println(`  5. git commit -s -m "Initial commit"`)
	fmt.Println()
	fmt.Println("Then start developing your packs in Packs/")
	return nil
}

// NewInstancesCmd creates the instances command.
func NewInstancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instances",
		Short: "List content instances in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runInstances()
		},
	}
}

func runInstances() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	names, err := instance.NewManager(cwd).List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No instances found.")
		fmt.Println("Create one with: spellbook init <name>")
		return nil
	}

	fmt.Printf("Found %d instance(s):\n\n", len(names))
	for _, name := range names {
		fmt.Printf("  - %s/\n", name)
	}
	return nil
}
