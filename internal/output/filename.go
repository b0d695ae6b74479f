package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxUniqueAttempts bounds the collision-suffix search so a directory
// full of captures cannot spin Save forever.
const maxUniqueAttempts = 9999

// maxNameBytes caps a sanitized name so the full filename stays inside
// common filesystem component limits once the timestamp and extension
// are appended.
const maxNameBytes = 200

// Filename builds "{prefix}_{YYYYMMDD_HHMMSS}.{ext}" for the given
// moment. The prefix is sanitized first.
func Filename(prefix, format string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", Sanitize(prefix), t.Format("20060102_150405"), Options{Format: format}.Ext())
}

// UniquePath returns path if nothing exists there, otherwise the first
// free "_1", "_2", ... variant before the extension. It gives up after
// maxUniqueAttempts rather than scanning unbounded.
func UniquePath(path string) (string, error) {
	if !pathExists(path) {
		return path, nil
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxUniqueAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !pathExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free filename for %q after %d attempts", path, maxUniqueAttempts)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Sanitize makes name safe as a single filename component: characters
// that are invalid on Windows or that act as separators are removed,
// control characters are dropped, trailing dots and spaces are trimmed,
// reserved device names get an underscore prefix, and overlong names
// are truncated. An empty result becomes "unnamed".
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimRight(b.String(), ". ")
	if out == "" {
		return "unnamed"
	}
	if isReservedName(out) {
		out = "_" + out
	}
	if len(out) > maxNameBytes {
		out = truncateRunes(out, maxNameBytes)
	}
	return out
}

// isReservedName reports whether the stem of name (up to the first
// dot) is a Windows reserved device name. Windows refuses these even
// with an extension attached.
func isReservedName(name string) bool {
	stem := name
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	upper := strings.ToUpper(stem)
	switch upper {
	case "CON", "PRN", "AUX", "NUL":
		return true
	}
	if len(upper) == 4 && (strings.HasPrefix(upper, "COM") || strings.HasPrefix(upper, "LPT")) {
		c := upper[3]
		return c >= '1' && c <= '9'
	}
	return false
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	total := 0
	for i, r := range s {
		total = i + len(string(r))
		if total > n {
			return s[:i]
		}
	}
	return s
}
