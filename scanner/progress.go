package scanner

import (
	"sort"

	"go.uber.org/zap"
)

// Tally counts what a walk has seen
type Tally struct {
	files    int
	dirs     int
	images   int
	skipped  int
	byFormat map[string]int
}

// Add records one visited entry
func (t *Tally) Add(e Entry) {
	if e.IsDir {
		t.dirs++
		return
	}

	t.files++
	format := GetFileFormat(e.Path)
	if format == "" {
		return
	}

	t.images++
	if t.byFormat == nil {
		t.byFormat = make(map[string]int)
	}
	t.byFormat[format]++
}

// Files returns the number of non-directory entries
func (t *Tally) Files() int { return t.files }

// Dirs returns the number of directories, the root included
func (t *Tally) Dirs() int { return t.dirs }

// Images returns the number of files with a supported image extension
func (t *Tally) Images() int { return t.images }

// Skipped returns the number of entries that could not be read
func (t *Tally) Skipped() int { return t.skipped }

// FormatCount returns how many images of the given format were seen
func (t *Tally) FormatCount(format string) int { return t.byFormat[format] }

// Fields renders the tally as log fields
func (t *Tally) Fields() []zap.Field {
	fields := []zap.Field{
		zap.Int("files", t.files),
		zap.Int("dirs", t.dirs),
		zap.Int("images", t.images),
	}
	if t.skipped > 0 {
		fields = append(fields, zap.Int("skipped", t.skipped))
	}

	formats := make([]string, 0, len(t.byFormat))
	for f := range t.byFormat {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	for _, f := range formats {
		fields = append(fields, zap.Int(f, t.byFormat[f]))
	}
	return fields
}
