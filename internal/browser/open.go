package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches url in the user's default browser. On Linux the
// BROWSER environment variable, when set, wins over xdg-open.
func Open(url string) error {
	var name string
	args := []string{url}

	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
		if b := os.Getenv("BROWSER"); b != "" {
			name = b
		}
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
