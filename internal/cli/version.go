package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/pkg/release"
	"github.com/gocortexio/spellbook/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <pack>",
		Short: "Show version information for a pack",
		Long: `Show the manifest version of a pack and, when the instance lives in a
git repository, the latest release tag matching the pack.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.Context(), args[0])
		},
	}
}

func runVersion(ctx context.Context, name string) error {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return err
	}

	pk, err := findPack(cfg, root, name)
	if err != nil {
		return err
	}

	fmt.Printf("Pack: %s\n", pk.Name)
	fmt.Printf("  Version:    %s\n", pk.Manifest.CurrentVersion)

	// Tag information is best effort: an instance without git history is
	// still a valid instance.
	git, err := release.OpenRepository(root)
	if err != nil {
		return nil
	}
	tags, err := git.Tags(ctx)
	if err != nil {
		return nil
	}
	if latest, ok := version.LatestTag(tags, pk.Name); ok {
		fmt.Printf("  Latest tag: %s\n", version.TagName(pk.Name, latest))
	} else {
		fmt.Println("  Latest tag: (none)")
	}
	return nil
}
