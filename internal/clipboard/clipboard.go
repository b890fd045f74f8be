// Package clipboard copies text to the system clipboard so rendered
// documents can be pasted straight into email or a word processor.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// linuxTools lists clipboard commands in preference order. X11 tools come
// first, wl-copy covers Wayland sessions.
var linuxTools = []struct {
	name string
	args []string
}{
	{"xclip", []string{"-selection", "clipboard"}},
	{"xsel", []string{"--clipboard", "--input"}},
	{"wl-copy", nil},
}

// ClipboardError reports that no clipboard utility is available on this OS.
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a ClipboardError with installation instructions
// for the current platform.
func NewClipboardError() *ClipboardError {
	var msg string
	switch runtime.GOOS {
	case "linux":
		msg = "no clipboard utility found. Install one of:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		msg = "pbcopy not available (this should not happen on macOS)"
	case "windows":
		msg = "clip command not available (this should not happen on Windows)"
	default:
		msg = fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}

	return &ClipboardError{OS: runtime.GOOS, Message: msg}
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "linux":
		return copyLinux(text)
	case "windows":
		return pipeTo(text, "cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func copyLinux(text string) error {
	var lastErr error
	for _, tool := range linuxTools {
		if !commandAvailable(tool.name) {
			continue
		}
		if err := pipeTo(text, tool.name, tool.args...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", tool.name, err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("clipboard utilities available but failed: %w", lastErr)
	}
	return NewClipboardError()
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CopyWithFallback copies text to the clipboard and returns a user-facing
// confirmation message. A missing-utility error is returned as-is so the
// caller can surface the installation instructions.
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		var clipErr *ClipboardError
		if errors.As(err, &clipErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsClipboardAvailable reports whether a clipboard utility exists on this
// system.
func IsClipboardAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return commandAvailable("pbcopy")
	case "linux":
		for _, tool := range linuxTools {
			if commandAvailable(tool.name) {
				return true
			}
		}
		return false
	case "windows":
		return true // clip ships with Windows
	default:
		return false
	}
}
