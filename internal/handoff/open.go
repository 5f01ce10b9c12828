package handoff

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL outside the terminal
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs with the platform's default handler
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// Reap the child without blocking the caller
	go cmd.Wait()
	return nil
}

// Send builds the messaging link and opens it. The link is returned even
// when opening fails, so it can be shown to the user instead.
func Send(opener Opener, baseURL, phone, message string) (string, error) {
	link, err := MessagingLink(baseURL, phone, message)
	if err != nil {
		return "", err
	}
	if err := opener.Open(link); err != nil {
		return link, err
	}
	return link, nil
}
