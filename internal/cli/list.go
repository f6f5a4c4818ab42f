package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocortexio/spellbook/pkg/pack"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered content packs",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runList()
		},
	}
}

func runList() error {
	cfg, root, err := loadWorkspace()
	if err != nil {
		return err
	}

	registry, err := pack.Discover(cfg.PacksDir(root), pack.Options{Exclude: cfg.ExcludePacks})
	if err != nil {
		return err
	}

	if registry.Len() == 0 {
		fmt.Println("No packs found.")
		return nil
	}

	fmt.Printf("Found %d pack(s):\n\n", registry.Len())
	for _, pk := range registry.Packs() {
		fmt.Printf("  - %s (v%s)\n", pk.Name, pk.Manifest.CurrentVersion)
		if desc := truncate(pk.Manifest.Description, MaxDescriptionLength); desc != "" {
			fmt.Printf("    %s\n", desc)
		}
	}

	for _, warning := range registry.Warnings() {
		fmt.Printf("  ! %s skipped: %v\n", warning.Pack, warning.Err)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
