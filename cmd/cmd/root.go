package cmd

import (
	"github.com/ostafen/symtab/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:     env.AppName,
		Short:   env.AppName + " - case-insensitive symbol table toolkit",
		Version: env.Version,
	}
	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineLoadCommand(),
		DefineLookupCommand(),
		DefineHashCommand(),
		DefineGenCommand(),
		DefineMountCommand(),
	)

	return rootCmd.Execute()
}
