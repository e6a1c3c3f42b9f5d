package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ostafen/symtab/internal/symload"
	"github.com/ostafen/symtab/pkg/symtab"
	"github.com/spf13/cobra"
)

func DefineLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <symbol_file> <key>...",
		Short: "Look up keys in a symbol file",
		Long: `The 'lookup' command loads a symbol file into a table and prints the value bound to each key.
Keys are matched ignoring ASCII case. With --type 0 (the default) any type matches and the
first matching entry of the key's bucket wins.`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE:         RunLookup,
	}

	cmd.Flags().Uint32P("type", "t", 0, "type of the symbols to look up (0 matches any type)")
	cmd.Flags().Int("buckets", 0, "number of buckets (default: from the symbol file, or 101)")
	return cmd
}

func RunLookup(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	typ, _ := cmd.Flags().GetUint32("type")
	buckets, _ := cmd.Flags().GetInt("buckets")

	res, err := loadFile(args[0], symload.Options{
		Buckets: buckets,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	defer res.Table.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tBUCKET\tVALUE")

	missing := 0
	for _, key := range args[1:] {
		value, err := res.Table.Lookup(key, typ)
		if errors.Is(err, symtab.ErrNotFound) {
			missing++
			fmt.Fprintf(w, "%s\t%d\t-\n", key, res.Table.Bucket(key))
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", key, res.Table.Bucket(key), value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d keys not found", missing, len(args)-1)
	}
	return nil
}
