package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/spf13/cobra"
)

func DefineGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <output_file>",
		Short: "Generate a synthetic symbol file",
		Long: `The 'gen' command writes a symbol file holding --count symbols named after --pattern.
Types cycle from 1 to --types, so every name is defined once per type it receives.
Generated files are useful to observe bucket distribution with 'load'.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunGen,
	}

	cmd.Flags().IntP("count", "n", 1000, "number of symbols to generate")
	cmd.Flags().String("pattern", "symbol_%04d", "printf pattern used to build names from an index")
	cmd.Flags().Uint32("types", 1, "number of distinct types to cycle through")
	cmd.Flags().Int("buckets", 0, "bucket count suggested by the generated file (0 omits it)")
	return cmd
}

func RunGen(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	count, _ := cmd.Flags().GetInt("count")
	pattern, _ := cmd.Flags().GetString("pattern")
	types, _ := cmd.Flags().GetUint32("types")
	buckets, _ := cmd.Flags().GetInt("buckets")

	if count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", count)
	}
	if types == 0 {
		return fmt.Errorf("--types must be positive")
	}

	f := generate(pattern, count, types)
	f.Buckets = buckets

	out, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := symfile.Write(w, f); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.Infof("Generated %d symbols into %s", count, absPath(args[0]))
	return out.Close()
}

func generate(pattern string, count int, types uint32) *symfile.File {
	f := &symfile.File{
		Symbols: make([]symfile.Symbol, count),
	}
	for i := range f.Symbols {
		name := fmt.Sprintf(pattern, i/int(types))
		f.Symbols[i] = symfile.Symbol{
			Name:  name,
			Type:  uint32(i)%types + 1,
			Value: fmt.Sprintf("value_%d", i),
		}
	}
	return f
}
