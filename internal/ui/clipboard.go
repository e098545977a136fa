// Package ui provides shared terminal UI helpers.
package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ClipboardWriter provides cross-platform clipboard access with graceful degradation.
type ClipboardWriter struct {
	cmd  string
	args []string
	err  string
}

// NewClipboardWriter creates a new ClipboardWriter and checks availability.
func NewClipboardWriter() *ClipboardWriter {
	cw := &ClipboardWriter{}
	cw.detect()
	return cw
}

// detect finds a clipboard tool for the current platform.
func (cw *ClipboardWriter) detect() {
	type tool struct {
		cmd  string
		args []string
	}
	var candidates []tool
	switch runtime.GOOS {
	case "darwin":
		candidates = []tool{{"pbcopy", nil}}
	case "linux":
		candidates = []tool{
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
			{"wl-copy", nil},
		}
	case "windows":
		candidates = []tool{{"clip", nil}}
	default:
		cw.err = fmt.Sprintf("unsupported platform: %s", runtime.GOOS)
		return
	}

	for _, t := range candidates {
		if _, err := exec.LookPath(t.cmd); err == nil {
			cw.cmd = t.cmd
			cw.args = t.args
			return
		}
	}
	cw.err = "clipboard tool not found (install xclip, xsel, or wl-copy)"
}

// IsAvailable returns whether clipboard operations are supported.
func (cw *ClipboardWriter) IsAvailable() bool {
	return cw.cmd != ""
}

// Error returns the reason clipboard is unavailable.
func (cw *ClipboardWriter) Error() string {
	return cw.err
}

// Write copies text to the system clipboard.
func (cw *ClipboardWriter) Write(text string) error {
	if cw.cmd == "" {
		return fmt.Errorf("clipboard unavailable: %s", cw.err)
	}
	cmd := exec.Command(cw.cmd, cw.args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
