package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/bornholm/cseprobe/pkg/search"
	"github.com/pkg/errors"
)

const (
	NoResults = "No results found."
	Banner    = "Results found:"
)

var rule = strings.Repeat("-", 80)

// Display writes a human readable listing of the results to w.
func Display(w io.Writer, results []search.Result) error {
	if len(results) == 0 {
		if _, err := fmt.Fprintln(w, NoResults); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	var sb strings.Builder

	sb.WriteString("\n" + Banner + "\n\n")

	for i, r := range results {
		r = r.WithDefaults()

		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("   %s\n", r.URL))
		sb.WriteString(fmt.Sprintf("   %s\n", r.Description))
		sb.WriteString(rule + "\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
