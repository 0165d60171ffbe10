package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dhamidi/ddoc/design"
	"github.com/dhamidi/ddoc/format"
	"github.com/dhamidi/ddoc/loader"
	"github.com/dhamidi/ddoc/profile"
)

type parseOptions struct {
	format  string
	workers int
	outDir  string
	stdout  io.Writer
	stderr  io.Writer
}

func newParseCmd() *cobra.Command {
	var opts parseOptions
	var profilePath string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "parse <path>...",
		Short: "Build the design document of source files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			if _, err := format.New(opts.format, io.Discard); err != nil {
				return err
			}
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()

			if !watch {
				return runParse(cmd.Context(), args, prof, opts)
			}

			w := loader.NewWatcher(args, prof, interval)
			go func() {
				<-cmd.Context().Done()
				w.Stop()
			}()
			return w.Run(func(changed []string) {
				if err := runParse(cmd.Context(), changed, prof, opts); err != nil {
					fmt.Fprintln(opts.stderr, err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "parallel parses (default: number of CPUs)")
	cmd.Flags().StringVarP(&opts.outDir, "outdir", "o", "", "write one output file per source into this directory")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reparse files when they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")
	profileFlag(cmd, &profilePath)

	return cmd
}

func runParse(ctx context.Context, paths []string, prof *profile.Profile, opts parseOptions) error {
	units, err := loader.Load(paths, prof)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := design.ParseAll(ctx, units, prof, opts.workers)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	elapsed := time.Since(start)

	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", opts.outDir, err)
		}
	}

	var size uint64
	for _, u := range units {
		size += uint64(len(u.Src))
	}

	failed, diagnostics := 0, 0
	names := outputNames(results, opts.format)
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintln(opts.stderr, r.Err)
			continue
		}
		diagnostics += len(r.Doc.Diagnostics)
		for _, d := range r.Doc.Diagnostics {
			fmt.Fprintln(opts.stderr, d)
		}
		if err := writeDocument(r, names[i], opts); err != nil {
			return err
		}
	}

	fmt.Fprintf(opts.stderr, "%s files (%s) in %s: %d failed, %s diagnostics\n",
		humanize.Comma(int64(len(units))), humanize.Bytes(size), elapsed.Round(time.Millisecond),
		failed, humanize.Comma(int64(diagnostics)))

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(units))
	}
	return nil
}

func writeDocument(r design.Result, name string, opts parseOptions) error {
	if opts.outDir == "" {
		enc, err := format.New(opts.format, opts.stdout)
		if err != nil {
			return err
		}
		if err := enc.Encode(r.Doc); err != nil {
			return fmt.Errorf("encode %s: %w", r.Path, err)
		}
		return nil
	}

	path := filepath.Join(opts.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc, err := format.New(opts.format, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := enc.Encode(r.Doc); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", r.Path, err)
	}
	return f.Close()
}

// outputNames picks an output file name per result. Sources sharing a
// base name get a numeric suffix.
func outputNames(results []design.Result, formatName string) []string {
	ext := format.Extension(formatName)
	seen := make(map[string]int)
	names := make([]string, len(results))
	for i, r := range results {
		base := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s.%d", base, n)
		}
		names[i] = base + ext
	}
	return names
}
