// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"

	"github.com/ostafen/symtab/internal/env"
	"github.com/ostafen/symtab/internal/logger"
	"github.com/ostafen/symtab/internal/symload"
	"github.com/ostafen/symtab/pkg/report"
	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/ostafen/symtab/pkg/symtab"
	"github.com/ostafen/symtab/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <symbol_file>",
		Short: "Load a symbol file into a table and report on it",
		Long: `The 'load' command defines every symbol of a TOML symbol file into a fresh table,
prints how the entries are spread across buckets and then destroys the table.
Symbols can be undefined before teardown with --undefine name[:type]. With --report,
every entry leaving the table is recorded, in teardown order, to an XML report.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunLoad,
	}

	cmd.Flags().Int("buckets", 0, "number of buckets (default: from the symbol file, or 101)")
	cmd.Flags().String("mem-limit", "", "maximum memory the table may use, e.g. 64KB")
	cmd.Flags().StringP("report", "r", "", "path of the XML teardown report")
	cmd.Flags().StringSlice("undefine", nil, "symbols to undefine before teardown, as name[:type]")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func RunLoad(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	f, err := symfile.Load(args[0])
	if err != nil {
		return err
	}

	buckets, _ := cmd.Flags().GetInt("buckets")
	memLimit, err := getBytes(cmd, "mem-limit")
	if err != nil {
		return err
	}
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	reportPath, _ := cmd.Flags().GetString("report")
	refs, _ := cmd.Flags().GetStringSlice("undefine")

	undefs := make([]symbolRef, len(refs))
	for i, ref := range refs {
		undefs[i].name, undefs[i].typ, err = symload.ParseRef(ref)
		if err != nil {
			return err
		}
	}

	opts := symload.Options{
		Buckets:  symload.Buckets(f, buckets),
		MemLimit: memLimit,
		Logger:   log,
	}
	if !noProgress {
		opts.Progress = os.Stdout
	}

	var rw *report.Writer
	if reportPath != "" {
		out, err := os.Create(reportPath)
		if err != nil {
			return err
		}
		defer out.Close()

		bw := bufio.NewWriter(out)
		rw, err = startReport(bw, f, opts.Buckets)
		if err != nil {
			return err
		}
		opts.OnUndefine = rw.Undefine

		defer func() {
			if err := rw.Close(); err != nil {
				log.Errorf("unable to write report %s: %s", reportPath, err)
			}
			if err := bw.Flush(); err != nil {
				log.Errorf("unable to write report %s: %s", reportPath, err)
			}
		}()
	}

	log.Infof("Source: \t%s", absPath(f.Path))
	log.Infof("Symbols: \t%d", len(f.Symbols))
	log.Infof("Buckets: \t%d", opts.Buckets)
	if memLimit > 0 {
		log.Infof("Memory limit: \t%s", format.FormatBytes(int64(memLimit)))
	}

	res, err := symload.Load(f, opts)
	if err != nil {
		return err
	}
	st := res.Table

	printStats(log, res)

	for i, ref := range refs {
		err := st.Undefine(undefs[i].name, undefs[i].typ)
		if errors.Is(err, symtab.ErrNotFound) {
			log.Warnf("Undefine %s: not found", ref)
			continue
		}
		if err != nil {
			_ = st.Close()
			return err
		}
		log.Infof("Undefined %s", ref)
	}

	if err := st.Close(); err != nil {
		return err
	}

	log.Infof("Memory in use after teardown: \t%s", format.FormatBytes(int64(res.Mem.InUse())))
	if rw != nil {
		log.Infof("Report saved to: \t%s (%d entries)", absPath(reportPath), rw.Count())
	}
	return nil
}

type symbolRef struct {
	name string
	typ  uint32
}

func startReport(w *bufio.Writer, f *symfile.File, buckets int) (*report.Writer, error) {
	rw := report.NewWriter(w)

	err := rw.WriteHeader(report.Header{
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			SymbolFile: absPath(f.Path),
			Buckets:    buckets,
			Symbols:    len(f.Symbols),
		},
	})
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func printStats(log *logger.Logger, res *symload.Result) {
	stats := res.Table.Stats()

	log.Infof("Defined: \t%d", res.Defined)
	log.Infof("Duplicates: \t%d", len(res.Duplicates))
	log.Infof("Buckets used: \t%d/%d", stats.Used, stats.Buckets)
	log.Infof("Load factor: \t%.2f", stats.LoadFactor())
	log.Infof("Average chain: \t%.2f", stats.AvgChain())
	log.Infof("Longest chain: \t%d", stats.Longest)
	log.Infof("Memory in use: \t%s (peak %s)",
		format.FormatBytes(int64(res.Mem.InUse())),
		format.FormatBytes(int64(res.Mem.Peak())))
	log.Infof("Duration: \t%s", res.Duration)
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
