// Package browser opens result URLs in the system's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the default browser on urlString. The URL is validated
// first: only http and https schemes are accepted, so a hostile title or
// id can never smuggle a command to the shell.
func Open(urlString string) error {
	cmd, err := command(runtime.GOOS, urlString)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// command validates the URL and picks the platform's opener.
func command(goos, urlString string) (*exec.Cmd, error) {
	parsed, err := url.Parse(urlString)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q: only http and https are opened", parsed.Scheme)
	}

	switch goos {
	case "linux":
		return exec.Command("xdg-open", urlString), nil
	case "darwin":
		return exec.Command("open", urlString), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", urlString), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
