package overlay

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// SystemClipboard pipes text into the platform clipboard tool.
type SystemClipboard struct {
	// LookPath and Command are replaced in tests.
	LookPath func(string) (string, error)
	Command  func(ctx context.Context, name string, args ...string) *exec.Cmd
	GOOS     string
}

func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{LookPath: exec.LookPath, Command: exec.CommandContext, GOOS: runtime.GOOS}
}

// command picks the clipboard tool for the platform.
func (c *SystemClipboard) command() (string, []string, error) {
	switch c.GOOS {
	case "darwin":
		return "pbcopy", nil, nil
	case "windows":
		return "clip", nil, nil
	case "linux", "freebsd", "openbsd":
		for _, cand := range []struct {
			name string
			args []string
		}{
			{"wl-copy", nil},
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		} {
			if _, err := c.LookPath(cand.name); err == nil {
				return cand.name, cand.args, nil
			}
		}
		return "", nil, fmt.Errorf("no clipboard tool found (install wl-copy, xclip or xsel)")
	}
	return "", nil, fmt.Errorf("clipboard not supported on %s", c.GOOS)
}

func (c *SystemClipboard) Copy(ctx context.Context, text string) error {
	name, args, err := c.command()
	if err != nil {
		return err
	}
	cmd := c.Command(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
