package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ostafen/symtab/internal/symload"
	"github.com/ostafen/symtab/pkg/symtab"
	"github.com/spf13/cobra"
)

func DefineHashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <key>...",
		Short: "Print the hash and bucket of each key",
		Long: `The 'hash' command prints the case-insensitive hash of each key and the bucket
it would be stored in by a table with the given number of buckets.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunHash,
	}

	cmd.Flags().Int("buckets", symload.DefaultBuckets, "number of buckets")
	return cmd
}

func RunHash(cmd *cobra.Command, args []string) error {
	buckets, _ := cmd.Flags().GetInt("buckets")
	if buckets <= 0 {
		return fmt.Errorf("--buckets must be positive, got %d", buckets)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tHASH\tBUCKET")

	for _, key := range args {
		h := symtab.Hash(key)
		fmt.Fprintf(w, "%s\t%#08x\t%d\n", key, h, h%uint32(buckets))
	}
	return w.Flush()
}
