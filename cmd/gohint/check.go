package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	gohint "github.com/reoring/gohint"
	"github.com/reoring/gohint/dsl"
	"github.com/reoring/gohint/source"
)

type hintFlags struct {
	hint       string
	catalog    string
	name       string
	constraint string
}

func (f *hintFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.hint, "hint", "", "hint expression, e.g. 'dict[str, list[int]]'")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "hint catalog file (.yaml, .toml or .json)")
	cmd.Flags().StringVar(&f.name, "name", "", "catalog entry to use as the hint")
	cmd.Flags().StringVar(&f.constraint, "catalog-version", "", "semver constraint the catalog version must satisfy")
}

// resolve returns the hint selected by the flags and a short description of
// where it came from.
func (f *hintFlags) resolve() (gohint.Hint, string, error) {
	if f.hint == "" && f.name == "" {
		return nil, "", errors.New("one of --hint or --name is required")
	}
	if f.hint != "" && f.name != "" {
		return nil, "", errors.New("--hint and --name are mutually exclusive")
	}
	if f.catalog == "" {
		if f.name != "" {
			return nil, "", errors.New("--name requires --catalog")
		}
		h, err := dsl.Parse(f.hint)
		return h, f.hint, err
	}
	cat, err := dsl.LoadCatalog(f.catalog, dsl.CatalogOptions{Constraint: f.constraint})
	if err != nil {
		return nil, "", err
	}
	if f.name != "" {
		h, ok := cat.Lookup(f.name)
		if !ok {
			return nil, "", fmt.Errorf("%s: no entry %q", f.catalog, f.name)
		}
		return h, f.name, nil
	}
	h, err := cat.Env(nil).Parse(f.hint)
	return h, f.hint, err
}

type checkOptions struct {
	hintFlags
	format     string
	numberMode string
	jobs       int
	watch      bool
	strictKeys bool
}

type checkResult struct {
	path      string
	err       error
	violation *gohint.ViolationError
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check [flags] FILE...",
		Short: "Check documents against a hint",
		Long: `Decode each FILE and check it against the hint. "-" reads standard input
and needs --format. The exit status is 1 when any document fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			hint, desc, err := opts.resolve()
			if err != nil {
				return err
			}
			mode, err := parseNumberMode(opts.numberMode)
			if err != nil {
				return err
			}
			run := &checkRun{app: a, hint: hint, opts: opts, srcOpts: source.Options{NumberMode: mode, RejectDuplicateKeys: opts.strictKeys}, stdin: cmd.InOrStdin()}
			a.log.Debug("checking", slog.String("hint", gohint.HintString(hint)), slog.String("source", desc), slog.Int("files", len(files)))
			failed, err := run.checkAll(cmd.Context(), files)
			if err != nil {
				return err
			}
			if opts.watch {
				return run.watch(cmd.Context(), files)
			}
			if failed > 0 {
				return errViolations
			}
			return nil
		},
	}
	opts.hintFlags.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "", "document format; inferred from the extension when empty ("+formatList()+")")
	cmd.Flags().StringVar(&opts.numberMode, "numbers", "normalize", "number representation (normalize|json-number|float64)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "documents checked in parallel (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.strictKeys, "reject-duplicate-keys", false, "fail JSON documents that repeat an object key")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-check files whenever they change")
	return cmd
}

type checkRun struct {
	*app
	hint    gohint.Hint
	opts    checkOptions
	srcOpts source.Options
	stdin   io.Reader
}

// checkAll checks files concurrently and prints results in argument order.
// It returns the number of failed documents.
func (r *checkRun) checkAll(ctx context.Context, files []string) (int, error) {
	results := make([]checkResult, len(files))
	jobs := r.opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
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
			results[i] = r.checkOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	failed := 0
	for _, res := range results {
		r.out.result(res)
		if res.err != nil || res.violation != nil {
			failed++
		}
	}
	r.out.summary(len(results), failed)
	return failed, nil
}

func (r *checkRun) checkOne(path string) checkResult {
	res := checkResult{path: path}
	var (
		v   any
		err error
	)
	switch {
	case path == "-":
		if r.opts.format == "" {
			res.err = errors.New("--format is required for standard input")
			return res
		}
		v, err = source.Decode(r.stdin, r.opts.format, r.srcOpts)
	case r.opts.format != "":
		v, err = decodeAs(path, r.opts.format, r.srcOpts)
	default:
		v, err = source.DecodeFile(path, r.srcOpts)
	}
	if err != nil {
		res.err = err
		return res
	}
	if err := r.engine.Check(v, r.hint, path); err != nil {
		ve, ok := gohint.AsViolation(err)
		if !ok {
			res.err = err
			return res
		}
		res.violation = ve
		if ve.Err != nil {
			r.log.Warn("cause not determined", slog.String("path", path), slog.Any("error", ve.Err))
		}
	}
	return res
}

func parseNumberMode(s string) (source.NumberMode, error) {
	switch s {
	case "", "normalize":
		return source.NumberNormalize, nil
	case "json-number":
		return source.NumberJSONNumber, nil
	case "float64":
		return source.NumberFloat64, nil
	}
	return 0, fmt.Errorf("invalid --numbers %q (want normalize|json-number|float64)", s)
}

// decodeAs decodes path with an explicit format, ignoring its extension.
func decodeAs(path, format string, opt source.Options) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.Decode(f, format, opt)
}

func formatList() string { return strings.Join(source.Formats(), "|") }
