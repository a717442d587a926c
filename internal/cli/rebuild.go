package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

func newRebuildCmd() *cobra.Command {
	var (
		out    string
		keys   []string
		atomic bool
	)

	cmd := &cobra.Command{
		Use:   "rebuild <bookmark-file>",
		Short: "Rebuild a stale bookmark from its current location",
		Long: "Resolve the bookmark and encode a fresh token for the resolved\n" +
			"location. The token file is rewritten in place unless --out names\n" +
			"a different destination.",
		Args: cobra.ExactArgs(1),
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
			rebuilt, err := b.Rebuild(keys, bookmark.CreationOptions{})
			if err != nil {
				return err
			}

			dest := out
			if dest == "" {
				dest = args[0]
			}
			if err := rebuilt.WriteToFile(dest, bookmark.WriteOptions{Atomic: atomic}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bookmark rebuilt to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the rebuilt token to this file instead")
	cmd.Flags().StringSliceVar(&keys, "key", nil, "resource key to embed in the rebuilt token")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "write the token file atomically")
	return cmd
}
