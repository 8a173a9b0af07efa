package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	gohint "github.com/reoring/gohint"
	"github.com/reoring/gohint/i18n"
)

// errViolations signals that at least one document failed its hint. The
// report has already been printed, so main only sets the exit status.
var errViolations = errors.New("violations found")

// app carries the state shared by subcommands once the root command has
// loaded configuration.
type app struct {
	cfg     toolConfig
	cfgPath string
	engine  *gohint.Engine
	log     *slog.Logger
	out     *printer

	// flags
	configFlag  string
	colorFlag   string
	langFlag    string
	unionFlag   string
	verboseFlag bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "gohint",
		Short:         "Check documents against type hints and explain violations",
		Long:          `gohint decodes JSON, YAML, TOML or msgpack documents and checks them against hint expressions such as dict[str, list[int]], explaining which part of the value is at fault.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFlag, "config", "", "path to gohint.toml (default: search upward from the working directory)")
	root.PersistentFlags().StringVar(&a.colorFlag, "color", "", "colorize output (auto|on|off)")
	root.PersistentFlags().StringVar(&a.langFlag, "lang", "", "message language, e.g. en or ja")
	root.PersistentFlags().StringVar(&a.unionFlag, "union-policy", "", "how failed unions are explained (last|all)")
	root.PersistentFlags().BoolVarP(&a.verboseFlag, "verbose", "v", false, "log debug records to stderr")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newSchemaCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads configuration, then applies flag overrides on top of it.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configFlag
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return err
		}
		if ok {
			path = found
		}
	}
	cfg := defaultConfig()
	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.colorFlag != "" {
		cfg.Output.Color = a.colorFlag
	}
	if a.langFlag != "" {
		cfg.Engine.Language = a.langFlag
	}
	if a.unionFlag != "" {
		cfg.Engine.UnionPolicy = a.unionFlag
	}

	level := slog.LevelInfo
	if a.verboseFlag {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	opts, err := cfg.engineOptions()
	if err != nil {
		return err
	}
	opts.Logger = a.log.With(slog.String("component", "gohint"))
	a.engine = gohint.NewEngine(opts)
	if cfg.Engine.Language != "" {
		i18n.SetLanguage(cfg.Engine.Language)
	}

	useColor, err := colorEnabled(cfg.Output.Color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.out = newPrinter(cmd.OutOrStdout(), useColor)
	a.cfg, a.cfgPath = cfg, path
	if path != "" {
		a.log.Debug("config loaded", slog.String("path", path))
	}
	return nil
}

// colorEnabled resolves auto|on|off. auto colors terminals unless NO_COLOR
// is set.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid color mode %q (want auto|on|off)", mode)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if !errors.Is(err, errViolations) {
		fmt.Fprintln(os.Stderr, "gohint:", err)
	}
	os.Exit(1)
}
