package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/filemark/internal/tracker"
)

func newValuesCmd() *cobra.Command {
	var keys []string

	cmd := &cobra.Command{
		Use:   "values <bookmark-file>",
		Short: "Read resource values embedded in a bookmark",
		Long: "Print resource values captured when the bookmark was created.\n" +
			"This is an offline read; the target file is never touched.",
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

			lookup := keys
			if len(lookup) == 0 {
				lookup = []string{tracker.KeySize, tracker.KeyModTime, tracker.KeyMode, tracker.KeyContentType}
			}
			values, ok := b.ResourceValues(lookup)
			if !ok {
				return fmt.Errorf("no resource values embedded for %v", lookup)
			}

			if flags.jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(values)
			}
			names := make([]string, 0, len(values))
			for k := range values {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", k, values[k])
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keys, "key", nil, "resource key to read (default: all)")
	return cmd
}
