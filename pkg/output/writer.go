// Package output persists crew results as Markdown files under an outputs
// directory, one uniquely named file per run.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDir is where results land relative to the working directory.
	DefaultDir = "outputs"

	timestampLayout = "20060102T150405Z"
)

// Writer names and writes result files. Clock and ID generation are fields so
// tests can pin them; zero values use the real clock and random IDs.
type Writer struct {
	Dir   string
	Now   func() time.Time
	NewID func() string
}

// NewWriter returns a Writer targeting dir (DefaultDir when empty).
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{Dir: dir}
}

// Save writes content to a new Markdown file named
// customer_support_<UTC timestamp>_<8-hex id>.md and returns its path. The
// directory (and missing parents) are created as needed. Filesystem errors
// are returned to the caller untouched; there are no retries.
func (w *Writer) Save(content string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", err
	}

	ts := w.timestamp()
	id := w.runID()
	path := filepath.Join(w.Dir, fmt.Sprintf("customer_support_%s_%s.md", ts, id))

	header := fmt.Sprintf("# Customer Support Response\n\nGenerated: %s UTC\nRun ID: %s\n\n", ts, id)
	if err := os.WriteFile(path, []byte(header+content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAny coerces non-string content to its textual form before saving.
func (w *Writer) SaveAny(content any) (string, error) {
	if s, ok := content.(string); ok {
		return w.Save(s)
	}
	return w.Save(fmt.Sprint(content))
}

// Save is the package-level convenience with a default Writer.
func Save(content, dir string) (string, error) {
	return NewWriter(dir).Save(content)
}

func (w *Writer) timestamp() string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	return now().UTC().Format(timestampLayout)
}

func (w *Writer) runID() string {
	if w.NewID != nil {
		return w.NewID()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
