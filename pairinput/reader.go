// Package pairinput reads "key value" lines from standard input or from files.
//
// With no file names the reader consumes standard input; otherwise it reads
// the named files one after another. The name "-" stands for standard input.
package pairinput

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	// StdinName is the source name used for standard input.
	StdinName = "<stdin>"

	// DefaultMaxLineBytes bounds a line, not the input: the scan buffer only
	// grows as long lines show up.
	DefaultMaxLineBytes = 64 << 20
)

// Pair is one parsed input line.
type Pair struct {
	Key   string
	Value string
}

// Position locates a line inside its source. Line is 1-based.
type Position struct {
	Source string
	Line   int
}

// ParsePair splits line on runs of white space. Anything but exactly two
// fields is a *MalformedLineError; Source and Line are left for the caller.
func ParsePair(line string) (Pair, error) {
	pair, malformed := splitPair(line)
	if malformed != nil {
		return Pair{}, malformed
	}
	return pair, nil
}

func splitPair(line string) (Pair, *MalformedLineError) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Pair{}, &MalformedLineError{Text: line, Fields: len(fields)}
	}
	return Pair{Key: fields[0], Value: fields[1]}, nil
}

type Option func(*Reader)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithMaxLineBytes limits the length of a single line, not counting the
// trailing newline. Longer lines fail with an *InputUnavailableError wrapping
// bufio.ErrTooLong.
func WithMaxLineBytes(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLineBytes = n
		}
	}
}

// WithOpener replaces os.Open for named sources.
func WithOpener(open func(name string) (io.ReadCloser, error)) Option {
	return func(r *Reader) {
		r.open = open
	}
}

type Reader struct {
	names        []string
	stdin        io.Reader
	open         func(name string) (io.ReadCloser, error)
	maxLineBytes int
	logger       *zap.Logger
}

func NewReader(names []string, stdin io.Reader, opts ...Option) *Reader {
	r := &Reader{
		names: names,
		stdin: stdin,
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
		maxLineBytes: DefaultMaxLineBytes,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Each calls fn for every pair of every source, in order. It stops at the
// first malformed line, read failure, or error returned by fn.
func (r *Reader) Each(fn func(Pair, Position) error) error {
	if len(r.names) == 0 {
		return r.scan(StdinName, r.stdin, fn)
	}

	for _, name := range r.names {
		if name == "-" {
			if err := r.scan(StdinName, r.stdin, fn); err != nil {
				return err
			}
			continue
		}
		if err := r.scanFile(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) scanFile(name string, fn func(Pair, Position) error) error {
	f, err := r.open(name)
	if err != nil {
		return &InputUnavailableError{Source: name, Err: err}
	}
	defer f.Close()

	return r.scan(name, f, fn)
}

func (r *Reader) scan(source string, in io.Reader, fn func(Pair, Position) error) error {
	r.logger.Debug("reading source", zap.String("source", source))

	scanner := bufio.NewScanner(in)
	// +1 leaves room for the newline, or for the read that reports EOF
	limit := r.maxLineBytes + 1
	scanner.Buffer(make([]byte, 0, min(4096, limit)), limit)

	line := 0
	for scanner.Scan() {
		line++
		pair, malformed := splitPair(scanner.Text())
		if malformed != nil {
			malformed.Source = source
			malformed.Line = line
			return malformed
		}
		if err := fn(pair, Position{Source: source, Line: line}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &InputUnavailableError{Source: source, Err: err}
	}

	r.logger.Debug("source done", zap.String("source", source), zap.Int("lines", line))
	return nil
}
