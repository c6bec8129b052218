package dupreport

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/slon/finddupes/symtable"
)

func TestWrite(t *testing.T) {
	for _, tc := range []struct {
		name     string
		entries  []symtable.Entry
		expected string
	}{
		{name: "empty", expected: ""},
		{
			name: "one",
			entries: []symtable.Entry{
				{Key: "__ZN8autofill6kFaxReE", Values: []string{"autofill_regex_constants.o", "autofill_regex_other.o"}},
			},
			expected: "__ZN8autofill6kFaxReE defined in:\n" +
				"  autofill_regex_constants.o\n" +
				"  autofill_regex_other.o\n",
		},
		{
			name: "many",
			entries: []symtable.Entry{
				{Key: "a", Values: []string{"x.o", "x.o"}},
				{Key: "b", Values: []string{"1.o", "2.o", "3.o"}},
			},
			expected: "a defined in:\n  x.o\n  x.o\nb defined in:\n  1.o\n  2.o\n  3.o\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tc.entries))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestWriteError(t *testing.T) {
	broken := errors.New("broken pipe")
	entries := []symtable.Entry{
		{Key: strings.Repeat("k", 8192), Values: []string{"a.o", "b.o"}},
	}

	err := Write(failingWriter{err: broken}, entries)
	require.ErrorIs(t, err, broken)
}
