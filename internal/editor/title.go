package editor

import (
	"fmt"
	"strings"
)

// programTitle names the application in window captions.
const programTitle = "Snipmark"

type titleInfo struct {
	Source    string
	Tool      string
	Width     int
	Height    int
	LastSaved string
	Version   string
}

// windowTitle composes the editor caption from whatever parts are
// known; empty parts are skipped.
func windowTitle(info titleInfo) string {
	parts := []string{programTitle}

	if s := strings.TrimSpace(info.Source); s != "" {
		parts = append(parts, s)
	}

	if t := strings.TrimSpace(info.Tool); t != "" {
		parts = append(parts, t)
	}

	if info.Width > 0 && info.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", info.Width, info.Height))
	}

	if s := strings.TrimSpace(info.LastSaved); s != "" {
		parts = append(parts, fmt.Sprintf("last saved %s", s))
	}

	if v := strings.TrimSpace(info.Version); v != "" {
		parts = append(parts, fmt.Sprintf("v%s", v))
	}

	return strings.Join(parts, " - ")
}
