package pairinput

import "fmt"

// MalformedLineError reports a line that does not hold exactly two fields.
type MalformedLineError struct {
	Source string
	Line   int
	Text   string
	Fields int
}

func (e *MalformedLineError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed line %q: want 2 fields, got %d", e.Text, e.Fields)
	}
	return fmt.Sprintf("%s:%d: malformed line %q: want 2 fields, got %d", e.Source, e.Line, e.Text, e.Fields)
}

// InputUnavailableError reports a source that could not be opened or read.
type InputUnavailableError struct {
	Source string
	Err    error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Err
}
