package auth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener is the external capability that presents the consent page to
// the user. Tests substitute a fake; production uses the platform
// browser.
type Opener interface {
	Open(url string) error
}

// BrowserOpener launches the default browser for the current platform.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
