package pipeline

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stdout
)

// SetOutput replaces the writer that announcements are written to and
// returns the previous one. A nil writer discards announcements.
func SetOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()

	prev := output
	if w == nil {
		w = io.Discard
	}
	output = w
	return prev
}

// AnnounceTimeout reports the timeout configured on a generated pipeline. It
// is informational only: no deadline is enforced.
func AnnounceTimeout(ms uint64) {
	outputMu.Lock()
	defer outputMu.Unlock()

	_, _ = fmt.Fprintf(output, "Pipeline timeout set to %d ms\n", ms)
}
