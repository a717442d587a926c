package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

func newMarkCmd() *cobra.Command {
	var (
		out       string
		keys      []string
		scopeMode string
		atomic    bool
	)

	cmd := &cobra.Command{
		Use:   "mark <path>",
		Short: "Create a bookmark for a file",
		Long: "Encode the file at <path> into a bookmark token. With --out the\n" +
			"raw token bytes are written to a file; otherwise the token is\n" +
			"printed base64-encoded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := bookmark.ScopeMode(scopeMode)
			if !mode.Valid() {
				return fmt.Errorf("unknown scope mode %q", scopeMode)
			}

			target, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve target path: %w", err)
			}

			tr, detach, err := openTracker()
			if err != nil {
				return err
			}
			defer detach()

			b, err := bookmark.New(tr, profile(), target, keys, bookmark.CreationOptions{Scope: mode})
			if err != nil {
				return err
			}

			if out != "" {
				if err := b.WriteToFile(out, bookmark.WriteOptions{Atomic: atomic}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "bookmark written to %s\n", out)
				return nil
			}
			if flags.jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(b)
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Base64())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write raw token bytes to this file")
	cmd.Flags().StringSliceVar(&keys, "key", nil, "resource key to embed (size, mod_time, mode, content_type)")
	cmd.Flags().StringVar(&scopeMode, "scope", "none", "security scope mode: none, read-only, read-write")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "write the token file atomically")
	return cmd
}
