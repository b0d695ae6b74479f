package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Metadata describes a file on disk.
type Metadata struct {
	Path    string
	Size    int64
	ModTime time.Time
	SHA256  string
}

// Describe stats path and hashes its contents.
func Describe(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat %q: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Metadata{}, fmt.Errorf("hash %q: %w", path, err)
	}
	return Metadata{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		SHA256:  hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// FormatSize renders a byte count in human units ("512 B", "1.2 KB").
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
