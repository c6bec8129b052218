// Package finddupes reports keys that appear with more than one value.
//
// Input is a stream of "key value" lines, usually a symbol name and the
// object file defining it, as dumped from a static archive. All input is read
// before anything is printed, so a malformed line or an unreadable file never
// leaves a partial report behind.
package finddupes

import (
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"gitlab.com/slon/finddupes/dupconfig"
	"gitlab.com/slon/finddupes/dupreport"
	"gitlab.com/slon/finddupes/pairinput"
	"gitlab.com/slon/finddupes/symtable"
)

// Summary describes one finished run.
type Summary struct {
	Lines      int
	Keys       int
	Duplicates int
	Elapsed    time.Duration
}

type Option func(*Runner)

func WithStdin(r io.Reader) Option {
	return func(run *Runner) { run.stdin = r }
}

func WithStdout(w io.Writer) Option {
	return func(run *Runner) { run.stdout = w }
}

func WithLogger(logger *zap.Logger) Option {
	return func(run *Runner) { run.logger = logger }
}

func WithClock(clock clockwork.Clock) Option {
	return func(run *Runner) { run.clock = clock }
}

type Runner struct {
	config dupconfig.Config
	stdin  io.Reader
	stdout io.Writer
	logger *zap.Logger
	clock  clockwork.Clock
}

func NewRunner(config dupconfig.Config, opts ...Option) *Runner {
	r := &Runner{
		config: config,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run groups the pairs read from names (standard input when empty) and
// prints every key with two or more values.
func (r *Runner) Run(names []string) (Summary, error) {
	start := r.clock.Now()

	order, err := r.config.SortOrder()
	if err != nil {
		return Summary{}, err
	}

	table, err := r.Group(names)
	if err != nil {
		return Summary{}, err
	}

	entries := table.Duplicates(order)
	if err := dupreport.Write(r.stdout, entries); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Lines:      table.Lines(),
		Keys:       table.Len(),
		Duplicates: len(entries),
		Elapsed:    r.clock.Since(start),
	}
	r.logger.Debug("run finished",
		zap.Int("lines", summary.Lines),
		zap.Int("keys", summary.Keys),
		zap.Int("duplicates", summary.Duplicates),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// Group reads every pair into a new table.
func (r *Runner) Group(names []string) (*symtable.Table, error) {
	table := symtable.New()
	reader := pairinput.NewReader(names, r.stdin,
		pairinput.WithLogger(r.logger),
		pairinput.WithMaxLineBytes(r.config.MaxLineBytes),
	)
	err := reader.Each(func(p pairinput.Pair, _ pairinput.Position) error {
		table.Add(p.Key, p.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
