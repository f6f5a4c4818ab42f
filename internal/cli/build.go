package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/pkg/build"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var (
		all        bool
		noValidate bool
	)

	cmd := &cobra.Command{
		Use:   "build [pack]",
		Short: "Validate and package content packs",
		Long: `Validate and package content packs into zip artifacts.

Builds the named pack, or every discovered pack with --all. Validation hooks
run before packaging unless --no-validate is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify exactly one pack name or --all")
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runBuild(cmd.Context(), name, all, noValidate)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Build every discovered pack")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip validation hooks")

	return cmd
}

func runBuild(ctx context.Context, name string, all, noValidate bool) error {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return err
	}

	builder, err := newBuilder(cfg, root)
	if err != nil {
		return err
	}
	opts := build.Options{SkipValidation: noValidate}

	if !all {
		result, err := builder.BuildOne(ctx, name, opts)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	results, err := builder.BuildAll(ctx, opts)
	for i := range results {
		printResult(&results[i])
	}
	fmt.Printf("Built %d pack(s)\n", len(results))
	return err
}

func printResult(result *build.Result) {
	switch {
	case result.Err != nil:
		fmt.Printf("[FAIL] %s: %v\n", result.Pack, result.Err)
	case result.Artifact != "":
		fmt.Printf("[OK] %s %s -> %s\n", result.Pack, result.Version, result.Artifact)
	default:
		fmt.Printf("[OK] %s %s (no artifact)\n", result.Pack, result.Version)
	}
}
