package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sanmd/internal/ir"
	"sanmd/internal/observ"
	"sanmd/internal/sanmd"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [path...]",
	Short: "Instrument serialized modules",
	Long: "Instrument one or more serialized modules (*.smod) with binary metadata.\n" +
		"Options from the nearest sanmd.toml are defaults; flags OR into them.",
	Args: cobra.MinimumNArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().Bool("covered", false, "emit coverage records for all functions")
	runCmd.Flags().Bool("atomics", false, "emit records for atomic operations")
	runCmd.Flags().Bool("uar", false, "mark functions subject to use-after-return checking")
	runCmd.Flags().StringP("output-dir", "o", "", "write instrumented modules here instead of in place")
	runCmd.Flags().Int("jobs", 0, "maximum parallel module runs (0 = GOMAXPROCS)")
}

// runResult is one file's outcome. Slots are goroutine-unique, so the
// result slice needs no locking.
type runResult struct {
	Path    string
	Changed bool
	Stats   sanmd.Stats
	Err     error
}

func runExecution(cmd *cobra.Command, args []string) error {
	coveredFlag, err := cmd.Flags().GetBool("covered")
	if err != nil {
		return err
	}
	atomicsFlag, err := cmd.Flags().GetBool("atomics")
	if err != nil {
		return err
	}
	uarFlag, err := cmd.Flags().GetBool("uar")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	man, _, err := loadManifest(".")
	if err != nil {
		return err
	}
	opts := man.options().Or(sanmd.Options{
		Covered: coveredFlag,
		Atomics: atomicsFlag,
		UAR:     uarFlag,
	})
	if !opts.Any() {
		return fmt.Errorf("no metadata kinds enabled: pass --covered, --atomics or --uar, or set them in sanmd.toml")
	}
	if jobs <= 0 && man != nil {
		jobs = man.Config.Run.Jobs
	}

	files, err := collectModuleFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .smod files found under %s", strings.Join(args, ", "))
	}

	timer := observ.NewTimer()
	results, err := instrumentFiles(cmd.Context(), files, opts, jobs, outDir, timer)
	if err != nil {
		return err
	}

	changedStyle := color.New(color.FgGreen)
	failStyle := color.New(color.FgRed, color.Bold)
	out := cmd.OutOrStdout()

	var total sanmd.Stats
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			failStyle.Fprintf(out, "error")
			fmt.Fprintf(out, "     %s: %v\n", r.Path, r.Err)
		case r.Changed:
			changedStyle.Fprintf(out, "changed")
			fmt.Fprintf(out, "   %s (%s)\n", r.Path, r.Stats)
			total.Add(r.Stats)
		default:
			fmt.Fprintf(out, "unchanged %s\n", r.Path)
		}
	}
	fmt.Fprintf(out, "total: %s\n", total)
	if showTimings {
		fmt.Fprint(out, timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed", failed, len(files))
	}
	return nil
}

// collectModuleFiles expands arguments into a sorted list of .smod
// files; directories are walked recursively.
func collectModuleFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".smod") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Deterministic processing order.
	sort.Strings(files)
	return files, nil
}

// instrumentFiles runs the pass over each file in parallel. Each
// module is independent; per-file errors land in the result slot so
// one bad module does not abort the rest.
func instrumentFiles(ctx context.Context, files []string, opts sanmd.Options, jobs int, outDir string, timer *observ.Timer) ([]runResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]runResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = instrumentOne(path, opts, outDir, timer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func instrumentOne(path string, opts sanmd.Options, outDir string, timer *observ.Timer) runResult {
	res := runResult{Path: path}

	stop := timer.Start("load")
	mod, err := ir.LoadModule(path)
	stop()
	if err != nil {
		res.Err = err
		return res
	}
	pass, err := sanmd.New(mod, opts)
	if err != nil {
		res.Err = err
		return res
	}
	stop = timer.Start("instrument")
	res.Changed = pass.Run()
	stop()
	res.Stats = pass.Stats()
	if !res.Changed {
		return res
	}

	outPath := path
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			res.Err = err
			return res
		}
		outPath = filepath.Join(outDir, filepath.Base(path))
	}
	stop = timer.Start("write")
	err = ir.SaveModule(outPath, mod)
	stop()
	if err != nil {
		res.Err = err
	}
	return res
}
