package command

import (
	"regexp"
	"strings"
)

// SimulatedTerminalMessage nudges visitors who type real shell commands.
const SimulatedTerminalMessage = "Oops sorry, this is just a simulation of a real terminal. Type 'help' to see available commands."

var unixCommands = []string{
	"ls", "cd", "rm", "pwd", "cat", "touch", "mkdir", "rmdir", "cp", "mv",
	"chmod", "chown", "find", "grep", "head", "tail", "less", "more",
	"ps", "top", "kill",
}

var unixPattern = regexp.MustCompile(`(?i)^\s*(` + strings.Join(unixCommands, "|") + `)\b`)

// IsUnixCommand detects common Unix commands so the dispatcher can nudge
// users toward the simulated command set.
func IsUnixCommand(raw string) bool {
	return unixPattern.MatchString(raw)
}
