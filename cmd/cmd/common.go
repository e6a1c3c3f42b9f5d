package cmd

import (
	"fmt"
	"os"

	"github.com/ostafen/symtab/internal/logger"
	"github.com/ostafen/symtab/internal/symload"
	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/ostafen/symtab/pkg/util/format"
	"github.com/spf13/cobra"
)

func newLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(os.Stdout, logger.ParseLevel(level))
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return 0, nil
	}

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}

// loadFile reads a symbol file and defines its symbols into a new table.
// The caller owns the returned table.
func loadFile(path string, opts symload.Options) (*symload.Result, error) {
	f, err := symfile.Load(path)
	if err != nil {
		return nil, err
	}
	return symload.Load(f, opts)
}
