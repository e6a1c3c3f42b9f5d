//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/symtab/internal/logger"
)

func Mount(mountpoint string, sfs *SymbolFS, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
