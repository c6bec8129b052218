package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/slon/finddupes/dupconfig"
	"gitlab.com/slon/finddupes/finddupes"
)

const (
	exitOK    = 0
	exitInput = 1
	exitUsage = 2
)

// usageError marks bad flags and bad configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage):
		return exitUsage
	default:
		// malformed lines, unreadable inputs and failed writes
		return exitInput
	}
}

func newLogger(config dupconfig.Log, w io.Writer) (*zap.Logger, error) {
	level, err := config.ZapLevel()
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	switch config.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Named("finddupes"), nil
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finddupes [file ...]",
		Short: "Print keys that appear with more than one value",
		Long: `finddupes reads "key value" lines from the named files, or from standard
input when no file is given ("-" also means standard input), and prints every
key that appears on two or more lines together with all of its values.

Typical use is finding symbols defined in several object files of a static
archive:

    ardump libbrowser.a | finddupes`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := dupconfig.FromFlags(cmd.Flags())
			if err != nil {
				return &usageError{err: err}
			}

			logger, err := newLogger(config.Log, stderr)
			if err != nil {
				return &usageError{err: err}
			}
			defer func() { _ = logger.Sync() }()

			logger.Debug("starting", zap.Strings("files", args), zap.String("order", config.Order))

			runner := finddupes.NewRunner(config,
				finddupes.WithStdin(stdin),
				finddupes.WithStdout(stdout),
				finddupes.WithLogger(logger),
			)
			summary, err := runner.Run(args)
			if err != nil {
				logger.Debug("run failed", zap.Error(err))
				return err
			}
			logger.Info("done", zap.Int("duplicates", summary.Duplicates), zap.Int("lines", summary.Lines))
			return nil
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	dupconfig.BindFlags(cmd.Flags())
	cmd.Flags().SortFlags = false
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		// --max_line_bytes и --max-line-bytes считаем одним флагом
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	return cmd
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "finddupes: %v\n", err)
		os.Exit(exitCode(err))
	}
}
