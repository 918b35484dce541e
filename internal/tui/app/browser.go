package app

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// openURL launches the system browser at target, trying each platform
// opener in order.
func openURL(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("empty url")
	}

	var cmds [][]string
	switch runtime.GOOS {
	case "darwin":
		cmds = [][]string{{"open", target}}
	case "windows":
		cmds = [][]string{{"cmd", "/c", "start", "", target}}
	default:
		cmds = [][]string{{"xdg-open", target}, {"gio", "open", target}}
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		if err := cmd.Start(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no open command available")
}
