package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

func newAliasCmd() *cobra.Command {
	var atomic bool

	cmd := &cobra.Command{
		Use:   "alias <bookmark-file> <dest>",
		Short: "Write an alias file for a bookmark's target",
		Long: "Resolve the bookmark and write a fresh token flagged as suitable\n" +
			"for an alias file to <dest>. Stale bookmarks are refused; rebuild\n" +
			"them first.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, detach, err := openTracker()
			if err != nil {
				return err
			}
			defer detach()

			b, err := readBookmarkFile(tr, args[0])
			if err != nil {
				return err
			}
			if err := b.WriteAliasFile(args[1], bookmark.CreationOptions{}, bookmark.WriteOptions{Atomic: atomic}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "alias file written to %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&atomic, "atomic", false, "write the alias file atomically")
	return cmd
}
