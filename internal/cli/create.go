package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/pkg/template"
)

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	var (
		description string
		author      string
		categories  []string
		sampleRule  bool
	)

	cmd := &cobra.Command{
		Use:   "create <pack>",
		Short: "Create a new content pack",
		Long: `Create a new content pack with the standard directory layout.

The pack metadata is seeded from the defaults in spellbook.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCreate(args[0], template.Options{
				Description: description,
				Author:      author,
				Categories:  categories,
				SampleRule:  sampleRule,
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Short description of the pack")
	cmd.Flags().StringVarP(&author, "author", "a", "", "Author name (uses instance default if not provided)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Pack categories (repeatable)")
	cmd.Flags().BoolVar(&sampleRule, "sample-rule", false, "Include example correlation rules")

	return cmd
}

func runCreate(name string, opts template.Options) error {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return err
	}

	scaffolder := template.New(cfg.PacksDir(root), cfg.Defaults)
	path, err := scaffolder.Create(name, opts)
	if err != nil {
		return err
	}

	fmt.Printf("[OK] Created pack: %s\n", path)
	return nil
}
