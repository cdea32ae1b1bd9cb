package cli

import (
	"fmt"
	"io"

	"github.com/isdelr/pixelgram/internal/actions"
)

// report prints a terminal result. Failures are returned as errors so the
// process exits non-zero.
func report(w io.Writer, res actions.Result) error {
	if !res.OK() {
		return fmt.Errorf("%s failed: %s", res.Category, res.Message)
	}
	if res.Message != "" {
		fmt.Fprintf(w, "%s: %s\n", res.Category, res.Message)
		return nil
	}
	fmt.Fprintf(w, "%s: done\n", res.Category)
	return nil
}
