package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

func newResolveCmd() *cobra.Command {
	var scoped bool

	cmd := &cobra.Command{
		Use:   "resolve <bookmark-file>",
		Short: "Resolve a bookmark to its current location",
		Args:  cobra.ExactArgs(1),
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
			res, err := b.Resolve(bookmark.ResolutionOptions{WithSecurityScope: scoped})
			if err != nil {
				return err
			}
			return printResolved(cmd, res)
		},
	}

	cmd.Flags().BoolVar(&scoped, "scoped", false, "resolve with security scope")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <bookmark-file>",
		Short: "Report a bookmark's state",
		Long: "Print the bookmark's state and exit 0 when valid, 1 when stale,\n" +
			"2 when invalid.",
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

			state := b.State()
			fmt.Fprintln(cmd.OutOrStdout(), state)
			if state == bookmark.StateValid {
				return nil
			}
			code := exitSysError
			if state == bookmark.StateStale {
				code = exitUserError
			}
			// os.Exit skips deferred calls, so detach explicitly.
			detach()
			os.Exit(code)
			return nil
		},
	}
}
