// Package export writes scraped data to timestamped snapshot files for
// offline analysis: the raw HTML as received, and the normalized courts as
// JSON with a provenance envelope.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yorch/doral-courts/internal/court"
)

// DefaultDir is the directory snapshot files are written to.
const DefaultDir = "data"

const timestampLayout = "20060102_150405"

// Exporter writes snapshot files into one directory.
type Exporter struct {
	dir string
}

// New creates an Exporter writing to dir (DefaultDir when empty).
func New(dir string) *Exporter {
	if dir == "" {
		dir = DefaultDir
	}
	return &Exporter{dir: dir}
}

// snapshot is the JSON envelope around exported courts.
type snapshot struct {
	Timestamp   string        `json:"timestamp"`
	TotalCourts int           `json:"total_courts"`
	SourceURL   string        `json:"source_url,omitempty"`
	Courts      []court.Court `json:"courts"`
}

// SaveHTML writes raw page HTML to a timestamped file and returns its path.
func (e *Exporter) SaveHTML(html string, suffix string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("doral_courts_%s%s.html", time.Now().Format(timestampLayout), suffix)
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing HTML snapshot: %w", err)
	}
	return path, nil
}

// SaveJSON writes courts to a timestamped JSON file, recording the source
// URL for provenance, and returns the file's path.
func (e *Exporter) SaveJSON(courts []court.Court, sourceURL string, suffix string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	snap := snapshot{
		Timestamp:   time.Now().Format(time.RFC3339),
		TotalCourts: len(courts),
		SourceURL:   sourceURL,
		Courts:      courts,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON snapshot: %w", err)
	}

	name := fmt.Sprintf("doral_courts_%s%s.json", time.Now().Format(timestampLayout), suffix)
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing JSON snapshot: %w", err)
	}
	return path, nil
}
