package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/pcsv/internal/app"
	"github.com/kk-code-lab/pcsv/internal/config"
	"github.com/kk-code-lab/pcsv/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultRows = 50

// flagAliases maps alternate long flag names onto the registered ones.
var flagAliases = map[string]string{
	"colorscheme": "config",
}

type runFunc func(ctx context.Context, opts apppkg.Options, logPath string) error

func newRootCmd(run runFunc) *cobra.Command {
	var (
		opts    apppkg.Options
		logPath string
	)

	cmd := &cobra.Command{
		Use:   "pcsv <file.csv>",
		Short: "Pretty-print CSV files as colored tables, optionally in a pager",
		Example: "  pcsv data.csv\n" +
			"  pcsv -n 0 -r data.csv\n" +
			"  pcsv -d ';' --no-header export.csv\n" +
			"  pcsv -p big.csv",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.RowsSet = cmd.Flags().Changed("rows")
			if opts.MaxRows < 0 {
				return errors.Errorf("invalid row count %d", opts.MaxRows)
			}
			if opts.Width < 0 {
				return errors.Errorf("invalid width %d", opts.Width)
			}
			return run(cmd.Context(), opts, logPath)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.MaxRows, "rows", "n", defaultRows, "rows to show, 0 for all (the pager shows all unless set)")
	flags.BoolVarP(&opts.RowNumbers, "row-numbers", "r", false, "prefix a row-number column")
	flags.IntVarP(&opts.Width, "width", "w", 0, "table width in columns; 100 and above is a percentage of the terminal")
	flags.StringVarP(&opts.Delimiter, "delimiter", "d", ",", `field delimiter, one character or \t`)
	flags.BoolVar(&opts.NoHeader, "no-header", false, "treat the first row as data")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML or TOML config file, also --colorscheme (default "+config.DefaultPath+", then "+config.TOMLPath+")")
	flags.BoolVarP(&opts.Pager, "pager", "p", false, "show the table in a full-screen pager")
	flags.StringVar(&logPath, "log", "", "write structured logs to this file")
	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := flagAliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	})

	return cmd
}

func runApp(ctx context.Context, opts apppkg.Options, logPath string) error {
	logger := logging.Nop()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.Wrapf(err, "failed to open log %s", logPath)
		}
		defer func() {
			_ = f.Close()
		}()
		logger = logging.New(f)
	}

	app, err := apppkg.NewApplication(ctx, opts, logger)
	if err != nil {
		return err
	}
	if err := app.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "pcsv failed", err)
		}
		return err
	}
	return nil
}

func main() {
	// UTF-8 fallback keeps non-ASCII cells readable on terminals without a
	// matching locale.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(runApp).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
