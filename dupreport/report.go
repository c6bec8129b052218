// Package dupreport prints duplicated keys as plain text.
package dupreport

import (
	"bufio"
	"fmt"
	"io"

	"gitlab.com/slon/finddupes/symtable"
)

// Write prints every entry as a "<key> defined in:" header followed by one
// line per value, indented by two spaces.
func Write(w io.Writer, entries []symtable.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s defined in:\n", e.Key); err != nil {
			return err
		}
		for _, value := range e.Values {
			if _, err := fmt.Fprintf(bw, "  %s\n", value); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
