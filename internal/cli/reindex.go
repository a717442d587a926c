package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex [root]",
		Short: "Refresh the location index from the file system",
		Long: "Walk the tree under root (default: current directory) and update\n" +
			"the recorded location of every known file identity. Bookmarks for\n" +
			"files moved across directories resolve only after a reindex over\n" +
			"a tree containing them.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}
			if _, err := os.Stat(root); err != nil {
				return fmt.Errorf("stat root: %w", err)
			}

			tr, detach, err := openTracker()
			if err != nil {
				return err
			}
			defer detach()

			updated, err := tr.Reindex(root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d mark(s)\n", updated)
			return nil
		},
	}
}
