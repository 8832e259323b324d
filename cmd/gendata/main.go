// Command gendata writes a synthetic benchmark-dataset catalogue for demos
// and load tests. With --every it keeps rewriting the file, which is handy
// for trying benchscope --watch.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"benchscope/internal/export"
	"benchscope/internal/model"
)

// Supported formats
const (
	formatCSV    = "csv"
	formatJSON   = "json"
	formatNDJSON = "ndjson"
)

func main() {
	var (
		formatsCSV string
		format     string
		count      int
		seed       int64
		outPath    string
		toStdout   bool
		every      time.Duration
		duration   time.Duration
	)
	pflag.StringVar(&formatsCSV, "formats", "", "comma-separated list: csv,json,ndjson. Writes each to simulateddata/datasets.<format>")
	pflag.StringVar(&format, "format", "", "single format: csv, json or ndjson. Use with --stdout or --out")
	pflag.IntVarP(&count, "count", "n", 1000, "number of datasets to generate")
	pflag.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pflag.StringVar(&outPath, "out", "", "output file path (only when --format is set). Defaults to simulateddata/datasets.<format>")
	pflag.BoolVar(&toStdout, "stdout", false, "write to stdout instead of a file (only when --format is set)")
	pflag.DurationVar(&every, "every", 0, "rewrite the file(s) at this interval with a fresh catalogue")
	pflag.DurationVar(&duration, "duration", 0, "with --every, stop after this long (0 = until interrupted)")
	pflag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if duration > 0 {
		var c context.CancelFunc
		ctx, c = context.WithTimeout(ctx, duration)
		defer c()
	}

	targets := map[string]string{}
	switch {
	case formatsCSV != "":
		formats := splitFormats(formatsCSV)
		if len(formats) == 0 {
			fmt.Fprintln(os.Stderr, "no valid formats provided")
			os.Exit(2)
		}
		for _, f := range formats {
			targets[f] = filepath.Join("simulateddata", "datasets."+f)
		}
	case format != "":
		format = normalizeFormat(format)
		if !isSupported(format) {
			fmt.Fprintf(os.Stderr, "unsupported format %q\n", format)
			os.Exit(2)
		}
		if toStdout {
			if err := write(os.Stdout, format, generate(rand.New(rand.NewSource(seed)), count)); err != nil {
				fmt.Fprintln(os.Stderr, "write:", err)
				os.Exit(1)
			}
			return
		}
		if outPath == "" {
			outPath = filepath.Join("simulateddata", "datasets."+format)
		}
		targets[format] = outPath
	default:
		fmt.Fprintln(os.Stderr, "either --formats or --format is required")
		os.Exit(2)
	}

	g, gctx := errgroup.WithContext(ctx)
	for f, p := range targets {
		g.Go(func() error {
			if err := run(gctx, f, p, count, seed, every); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			return nil
		})
		fmt.Fprintf(os.Stderr, "generating %d datasets -> %s\n", count, p)
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes one catalogue to path, then with every > 0 keeps rewriting it
// until ctx ends.
func run(ctx context.Context, format, path string, count int, seed int64, every time.Duration) error {
	rng := rand.New(rand.NewSource(seed))
	if err := writeFile(path, format, generate(rng, count)); err != nil {
		return err
	}
	if every <= 0 {
		return nil
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			// vary the size a little so reloads are visible
			n := count + rng.Intn(count/10+1)
			if err := writeFile(path, format, generate(rng, n)); err != nil {
				return err
			}
		}
	}
}

// writeFile replaces path atomically so a watcher never sees a partial file.
func writeFile(path, format string, recs []model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gendata-*")
	if err != nil {
		return err
	}
	if err := write(tmp, format, recs); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func write(w io.Writer, format string, recs []model.Record) error {
	switch format {
	case formatCSV:
		return export.WriteCSV(w, recs)
	case formatNDJSON:
		return export.WriteNDJSON(w, recs)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func splitFormats(csv string) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		f := normalizeFormat(p)
		if isSupported(f) && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func normalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "jsonl", "json_lines":
		return formatNDJSON
	}
	return f
}

func isSupported(f string) bool {
	switch f {
	case formatCSV, formatJSON, formatNDJSON:
		return true
	}
	return false
}
