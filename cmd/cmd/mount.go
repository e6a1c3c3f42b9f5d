package cmd

import (
	"path/filepath"
	"strings"

	"github.com/ostafen/symtab/internal/fuse"
	"github.com/ostafen/symtab/internal/symload"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <symbol_file>",
		Short: "Expose a symbol table as a read-only filesystem",
		Long: `The 'mount' command loads a symbol file into a table and mounts it through FUSE.
Each key is a file at the root whose content is the value found with the wildcard type.
Lookups ignore case, so FOO and foo open the same file. Per-type views live under
types/<type>/. The table is destroyed once the filesystem is unmounted.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "Path of the directory where the filesystem will be mounted. If not specified, a default will be generated.")
	cmd.Flags().Int("buckets", 0, "number of buckets (default: from the symbol file, or 101)")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	buckets, _ := cmd.Flags().GetInt("buckets")
	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}

	res, err := loadFile(args[0], symload.Options{
		Buckets: buckets,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	sfs, err := fuse.NewSymbolFS(res.Table, res.Symbols)
	if err != nil {
		_ = res.Table.Close()
		return err
	}
	defer sfs.Close()

	return fuse.Mount(mountpoint, sfs, log)
}

// getMountpoint derives a mountpoint name from a symbol file name by stripping the extension.
// If the extension is empty, "_mnt" is added.
func getMountpoint(symbolFile string) string {
	baseName := filepath.Base(symbolFile)
	ext := filepath.Ext(baseName)
	mountpoint := strings.TrimSuffix(baseName, ext)
	if ext == "" {
		mountpoint += "_mnt"
	}
	return mountpoint
}
