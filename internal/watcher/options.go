package watcher

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const defaultSettleDelay = 100 * time.Millisecond

// editorDebris matches the scratch files editors leave beside the file being saved.
var editorDebris = []string{"*.swp", "*.swx", "*~", "*.tmp", "4913"}

// Options configures a Watcher. The zero value watches every non-hidden file
// and skips editor scratch files.
type Options struct {
	// Extensions limits events to files with one of these suffixes, e.g. ".html".
	Extensions []string
	// IgnorePatterns are filepath.Match globs applied to the base name.
	// nil means editorDebris; an empty slice disables pattern matching.
	IgnorePatterns []string
	// IncludeHidden reports dot files and descends into dot directories.
	IncludeHidden bool
	// SettleDelay is how long a file must stay unchanged before it is reported.
	SettleDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.SettleDelay <= 0 {
		o.SettleDelay = defaultSettleDelay
	}
	if o.IgnorePatterns == nil {
		o.IgnorePatterns = editorDebris
	}
	return o
}

// accepts reports whether path should be watched (dirs) or reported (files).
func (o Options) accepts(path string, dir bool) bool {
	if !o.IncludeHidden && hidden(path) {
		return false
	}

	base := filepath.Base(path)
	if slices.ContainsFunc(o.IgnorePatterns, func(p string) bool {
		ok, _ := filepath.Match(p, base)
		return ok
	}) {
		return false
	}

	if dir || len(o.Extensions) == 0 {
		return true
	}
	return slices.Contains(o.Extensions, filepath.Ext(base))
}

func hidden(path string) bool {
	for part := range strings.SplitSeq(filepath.ToSlash(filepath.Clean(path)), "/") {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}
