package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/pkg/release"
	"github.com/gocortexio/spellbook/pkg/version"
)

// NewBumpVersionCmd creates the bump-version command.
func NewBumpVersionCmd() *cobra.Command {
	var (
		major    bool
		minor    bool
		revision bool
		tag      bool
		message  string
	)

	cmd := &cobra.Command{
		Use:   "bump-version <pack>",
		Short: "Increment a pack version",
		Long: `Increment a pack version and write it back to the manifest.

Reads the current version from pack_metadata.json, increments the selected
component and creates a release notes skeleton for the new version. Use
--tag to also commit the change and create a release tag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := bumpKind(major, minor, revision)
			if err != nil {
				return err
			}
			return runBump(cmd.Context(), args[0], release.Request{
				Kind:         kind,
				Tag:          tag,
				Message:      message,
				ReleaseNotes: true,
			})
		},
	}

	cmd.Flags().BoolVar(&major, "major", false, "Increment major version (x.0.0)")
	cmd.Flags().BoolVar(&minor, "minor", false, "Increment minor version (0.x.0)")
	cmd.Flags().BoolVar(&revision, "revision", false, "Increment revision version (0.0.x). Default")
	cmd.Flags().BoolVar(&tag, "tag", false, "Commit the change and create a release tag")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Override the commit message")

	return cmd
}

// NewSetVersionCmd creates the set-version command.
func NewSetVersionCmd() *cobra.Command {
	var (
		tag     bool
		force   bool
		message string
	)

	cmd := &cobra.Command{
		Use:   "set-version <pack> <version>",
		Short: "Set a pack to an explicit version",
		Long: `Set a pack to an explicit version.

Versions lower than the current one are rejected unless --force is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := version.Parse(args[1])
			if err != nil {
				return err
			}
			return runBump(cmd.Context(), args[0], release.Request{
				Target:  &target,
				Force:   force,
				Tag:     tag,
				Message: message,
			})
		},
	}

	cmd.Flags().BoolVar(&tag, "tag", false, "Commit the change and create a release tag")
	cmd.Flags().BoolVar(&force, "force", false, "Allow setting a lower version than the current one")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Override the commit message")

	return cmd
}

func bumpKind(major, minor, revision bool) (version.Kind, error) {
	set := 0
	for _, flag := range []bool{major, minor, revision} {
		if flag {
			set++
		}
	}
	if set > 1 {
		return "", fmt.Errorf("--major, --minor and --revision are mutually exclusive")
	}
	switch {
	case major:
		return version.KindMajor, nil
	case minor:
		return version.KindMinor, nil
	default:
		return version.KindRevision, nil
	}
}

func runBump(ctx context.Context, name string, req release.Request) error {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return err
	}

	pk, err := findPack(cfg, root, name)
	if err != nil {
		return err
	}
	req.Pack = pk

	var git release.Git
	if req.Tag {
		git, err = release.OpenRepository(root)
		if err != nil {
			return err
		}
	}

	record, err := release.NewCoordinator(git).Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("[OK] Set %s version to %s\n", record.Pack, record.NewVersion)
	if record.Tag != "" {
		fmt.Printf("[OK] Created tag %s at %s\n", record.Tag, shortHash(record.Commit))
		fmt.Printf("Push the release with: git push origin %s\n", record.Tag)
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
